package avatar

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/flockchat/flock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Explicit fetch deadline; remote image hosts are not trusted to respond.
// Downloads are never retried.
const fetchTimeout = 30 * time.Second

// Rect is the crop rectangle. End coordinates are exclusive.
type Rect struct {
	XStart int
	YStart int
	XEnd   int
	YEnd   int
}

// Service downloads a remote image, stores the original, stores a cropped
// copy under the same generated filename and points the user's avatar at it.
//
// The two writes and the profile update are not transactional: a failure
// mid-pipeline may leave an orphaned original with no cropped counterpart.
// Files are namespaced by random name, so orphans never clobber other data.
type Service struct {
	Users       flock.UserStore
	OriginalDir string
	CroppedDir  string
	// Client used to fetch source images. Defaults to a client with an
	// explicit timeout; the zero http.DefaultClient would block forever.
	Client *http.Client
}

func (s *Service) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: fetchTimeout}
}

// SetImage runs the avatar pipeline for userId. Input problems (extension
// outside the allow-set, degenerate rectangle, failed download) surface as
// flock.ValidationError; both local validations run before any network call.
func (s *Service) SetImage(ctx context.Context, userId flock.UserId, imgUrl string, rect Rect) error {
	ext := urlExtension(imgUrl)
	if !allowedExtension(ext) {
		return flock.ValidationError{Description: "file not allowed"}
	}
	if rect.XStart >= rect.XEnd {
		return flock.ValidationError{Description: "x_start must be lower than x_end"}
	}
	if rect.YStart >= rect.YEnd {
		return flock.ValidationError{Description: "y_start must be lower than y_end"}
	}

	user, err := s.Users.ById(ctx, userId)
	if err != nil {
		return fmt.Errorf("user by id: %w", err)
	}

	content, err := s.fetch(ctx, imgUrl)
	if err != nil {
		logrus.WithError(err).WithField("img_url", imgUrl).Debugln("Image download failed.")
		return flock.ValidationError{Description: "could not download image"}
	}

	fileName := uuid.NewString() + "." + ext
	originalPath := filepath.Join(s.OriginalDir, fileName)
	if err := os.WriteFile(originalPath, content, 0o644); err != nil {
		return fmt.Errorf("write original image: %w", err)
	}

	cropped, err := crop(content, rect, ext)
	if err != nil {
		return err
	}
	croppedPath := filepath.Join(s.CroppedDir, fileName)
	if err := os.WriteFile(croppedPath, cropped, 0o644); err != nil {
		return fmt.Errorf("write cropped image: %w", err)
	}

	user.AvatarUrl = "/imgurl/" + fileName
	if err := s.Users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user avatar: %w", err)
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, imgUrl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get image: status %d", resp.StatusCode)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	return content, nil
}

// crop decodes content, copies the rectangle into a fresh image and encodes
// it back in the source format. The rectangle is not bounds-checked against
// the source: pixels outside it stay zero in the output.
func crop(content []byte, rect Rect, ext string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	window := image.Rect(rect.XStart, rect.YStart, rect.XEnd, rect.YEnd)
	dst := image.NewRGBA(image.Rect(0, 0, window.Dx(), window.Dy()))
	draw.Draw(dst, dst.Bounds(), src, window.Min, draw.Src)

	var buf bytes.Buffer
	switch ext {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// urlExtension returns the lowercased text after the final "." of the url,
// or "" when there is none.
func urlExtension(imgUrl string) string {
	dot := strings.LastIndex(imgUrl, ".")
	if dot < 0 || dot == len(imgUrl)-1 {
		return ""
	}
	return strings.ToLower(imgUrl[dot+1:])
}

func allowedExtension(ext string) bool {
	switch ext {
	case "png", "jpg", "jpeg":
		return true
	default:
		return false
	}
}
