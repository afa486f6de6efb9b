package gocvcam

import (
	"fmt"

	"gocv.io/x/gocv"

	"qrattend/internal/adapters/scanner"
)

var _ scanner.Source = (*Camera)(nil)

// Camera is a scanner.Source backed by OpenCV.
type Camera struct {
	capture  *gocv.VideoCapture
	window   *gocv.Window
	detector gocv.QRCodeDetector

	frame, points, straight gocv.Mat
}

// OpenCamera opens video device and a preview window titled title.
func OpenCamera(device int, title string) (*Camera, error) {
	capture, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}
	return &Camera{
		capture:  capture,
		window:   gocv.NewWindow(title),
		detector: gocv.NewQRCodeDetector(),
		frame:    gocv.NewMat(),
		points:   gocv.NewMat(),
		straight: gocv.NewMat(),
	}, nil
}

func (c *Camera) Grab() (string, error) {
	if ok := c.capture.Read(&c.frame); !ok || c.frame.Empty() {
		return "", scanner.ErrNoFrame
	}
	payload := c.detector.DetectAndDecode(c.frame, &c.points, &c.straight)
	c.window.IMShow(c.frame)
	return payload, nil
}

func (c *Camera) PollKey() int {
	return c.window.WaitKey(1)
}

func (c *Camera) Close() error {
	c.straight.Close()
	c.points.Close()
	c.frame.Close()
	c.detector.Close()
	c.window.Close()
	return c.capture.Close()
}
