package spreadsheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"qrattend/internal/domain"
)

// ClientOptions returns the API options for the credentials file at
// credentialsPath. A service-account key is used as is. An installed-app
// client secret goes through the OAuth consent flow once, after which the
// token is cached in tokenPath and refreshed there.
func ClientOptions(ctx context.Context, credentialsPath, tokenPath string, prompt io.Writer) ([]option.ClientOption, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials: %w", domain.ErrAuth, err)
	}

	var kind struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &kind); err != nil {
		return nil, fmt.Errorf("%w: parse credentials: %w", domain.ErrAuth, err)
	}
	if kind.Type == "service_account" {
		return []option.ClientOption{
			option.WithCredentialsFile(credentialsPath),
			option.WithScopes(gsheets.SpreadsheetsScope),
		}, nil
	}

	cfg, err := google.ConfigFromJSON(data, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse client secret: %w", domain.ErrAuth, err)
	}

	src, err := tokenSource(ctx, cfg, tokenPath, prompt)
	if err != nil {
		return nil, err
	}
	return []option.ClientOption{option.WithTokenSource(src)}, nil
}

// tokenSource returns a refreshing source for the cached token, running the
// consent flow under ctx when no usable token is cached. Refreshes are not
// bound to ctx: the source serves the final push after the command context
// is cancelled.
func tokenSource(ctx context.Context, cfg *oauth2.Config, tokenPath string, prompt io.Writer) (*persistingSource, error) {
	tok, err := loadToken(tokenPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("⚠️ Jeton %s illisible, nouvelle autorisation: %v", tokenPath, err)
		}
		tok, err = authorize(ctx, cfg, prompt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuth, err)
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuth, err)
		}
	}

	src := &persistingSource{base: cfg.TokenSource(context.Background(), tok), path: tokenPath, last: tok}
	if _, err := src.Token(); err != nil {
		return nil, fmt.Errorf("%w: refresh token: %w", domain.ErrAuth, err)
	}
	return src, nil
}

// persistingSource writes every new token handed out by base to path.
type persistingSource struct {
	base oauth2.TokenSource
	path string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := saveToken(s.path, tok); err != nil {
			log.Printf("⚠️ Sauvegarde du jeton: %v", err)
		}
		s.last = tok
	}
	return tok, nil
}

func loadToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := json.NewEncoder(f).Encode(tok); err != nil {
		f.Close()
		return fmt.Errorf("encode token: %w", err)
	}
	return f.Close()
}

// authorize runs the loopback consent flow: a local listener receives the
// redirect carrying the authorization code.
func authorize(ctx context.Context, cfg *oauth2.Config, prompt io.Writer) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listen for oauth redirect: %w", err)
	}
	cfg.RedirectURL = "http://" + ln.Addr().String() + "/"

	state := uuid.NewString()
	codes := make(chan string, 1)
	errs := make(chan error, 1)
	srv := &http.Server{Handler: callbackHandler(state, codes, errs)}
	go srv.Serve(ln)
	defer srv.Close()

	fmt.Fprintf(prompt, "Open this URL in a browser to authorize access to the sheet:\n%s\n",
		cfg.AuthCodeURL(state, oauth2.AccessTypeOffline))

	select {
	case code := <-codes:
		tok, err := cfg.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchange code: %w", err)
		}
		return tok, nil
	case err := <-errs:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func callbackHandler(state string, codes chan<- string, errs chan<- error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "authorization denied", http.StatusForbidden)
			select {
			case errs <- fmt.Errorf("authorization denied: %s", e):
			default:
			}
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization complete, you can close this tab.")
		select {
		case codes <- code:
		default:
		}
	})
}
