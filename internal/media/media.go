package media

import (
	"path/filepath"
	"strings"
)

// Kind distinguishes still images from video clips.
type Kind int

const (
	KindUnknown Kind = iota
	KindImage
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// DetectKind classifies a media file by extension.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".bmp":
		return KindImage
	case ".mp4", ".avi", ".mov":
		return KindVideo
	default:
		return KindUnknown
	}
}

// FormatForExtension maps an extension to the encoder format name.
func FormatForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	default:
		return ""
	}
}
