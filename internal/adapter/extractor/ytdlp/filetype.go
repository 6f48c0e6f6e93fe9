package ytdlp

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// magicBytesBufferSize is the number of bytes read for content type detection.
const magicBytesBufferSize = 512

// checkVideoFile rejects empty files and files whose header is not a video container,
// such as an HTML error page saved under a video name.
func checkVideoFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open downloaded file: %w", err)
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, magicBytesBufferSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read downloaded file: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("downloaded file is empty")
	}

	if mime := detectContainer(buf[:n]); mime == "" {
		return fmt.Errorf("downloaded file is not a video container (%s)", http.DetectContentType(buf[:n]))
	}
	return nil
}

// detectContainer returns a MIME type for the video containers yt-dlp produces, or "".
func detectContainer(buf []byte) string {
	if len(buf) < 4 {
		return ""
	}

	// WebM/Matroska: EBML header
	if buf[0] == 0x1A && buf[1] == 0x45 && buf[2] == 0xDF && buf[3] == 0xA3 {
		return "video/webm"
	}

	// MP4/QuickTime: ftyp box at offset 4
	if len(buf) >= 12 && string(buf[4:8]) == "ftyp" {
		if string(buf[8:12]) == "qt  " {
			return "video/quicktime"
		}
		return "video/mp4"
	}

	if string(buf[:3]) == "FLV" {
		return "video/x-flv"
	}

	// MPEG-TS: sync byte every 188 bytes
	if buf[0] == 0x47 && (len(buf) < 189 || buf[188] == 0x47) {
		return "video/mp2t"
	}

	if mime := http.DetectContentType(buf); strings.HasPrefix(mime, "video/") {
		return mime
	}
	return ""
}
