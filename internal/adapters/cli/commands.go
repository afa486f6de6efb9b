package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"qrattend/internal/adapters/scanner/gocvcam"
	"qrattend/internal/config"
	"qrattend/internal/domain"
	"qrattend/internal/domain/entities"
	"qrattend/internal/infrastructure/badge"
	"qrattend/internal/infrastructure/i18n"
	"qrattend/internal/ports/output"
	"qrattend/internal/session"
)

const windowTitle = "Attendance Manager"

// SetupCommands builds the command tree. Output meant for the operator goes
// to out.
func SetupCommands(out io.Writer) *cobra.Command {
	// root command runs the desk
	rootCmd := &cobra.Command{
		Use:           "qrattend",
		Short:         "Mark attendance by scanning QR codes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, out, func(s *session.Session, cfg *config.Config) error {
				if err := s.Attach(cmd.Context()); err != nil {
					return err
				}
				cam, err := gocvcam.OpenCamera(cfg.CamNo, windowTitle)
				if err != nil {
					return err
				}
				return s.Run(cmd.Context(), cam)
			})
		},
	}

	// prints the sheet as loaded from the spreadsheet
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the attendance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, out, func(s *session.Session, _ *config.Config) error {
				PrintStatus(out, s.Records(), s.Summary(), s.Translator().T("status.present_footer", nil))
				return nil
			})
		},
	}

	// writes one QR badge per attendee
	badgesCmd := &cobra.Command{
		Use:   "badges",
		Short: "Write a QR code PNG for every registration id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, out, func(s *session.Session, cfg *config.Config) error {
				n, err := badge.NewGenerator(cfg.BadgeDir, cfg.Prefix()).Write(s.Records())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s.Translator().T("badges.written", map[string]any{"Count": n, "Dir": cfg.BadgeDir}))
				return nil
			})
		},
	}

	rootCmd.AddCommand(statusCmd, badgesCmd)
	return rootCmd
}

func withSession(cmd *cobra.Command, out io.Writer, fn func(*session.Session, *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	tr := i18n.NewTranslator(cfg.Locale)

	s, err := session.Open(cmd.Context(), cfg, out)
	if err != nil {
		return Describe(tr, err)
	}
	defer s.Close()

	return Describe(tr, fn(s, cfg))
}

// Describe prefixes err with the localized message of the domain error it
// wraps, if any.
func Describe(tr output.T, err error) error {
	code := domain.Code(err)
	if code == "" {
		return err
	}
	return fmt.Errorf("%s (%w)", tr.T("error."+code, nil), err)
}

// PrintStatus renders records as an aligned table with a present count
// footer.
func PrintStatus(w io.Writer, records []entities.Record, sum entities.Summary, presentLabel string) {
	headers := []string{
		domain.ColumnRegistrationID,
		domain.ColumnName,
		domain.ColumnAttendance,
		domain.ColumnTimeStamp,
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.RegistrationID, r.Name, r.Attendance, r.TimeStamp})
	}
	footers := []string{"", presentLabel, fmt.Sprintf("%d/%d", sum.Present, sum.Total), ""}
	PrintTable(w, headers, rows, footers)
}
