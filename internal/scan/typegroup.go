package scan

import "strings"

var imageExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".tif": {}, ".tiff": {},
	".heic": {}, ".heif": {}, ".webp": {}, ".bmp": {}, ".raw": {},
}

var videoExts = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".m4v": {}, ".avi": {}, ".mkv": {}, ".hevc": {},
}

var archiveExts = map[string]struct{}{
	".zip": {}, ".rar": {}, ".7z": {}, ".tar": {}, ".gz": {}, ".bz2": {},
	".xz": {}, ".dmg": {}, ".iso": {},
}

// InferGroup maps a content-type tag and path extension to a TypeGroup.
// First match wins; everything unmatched, including PDFs and generic
// content tags, is GroupOther.
func InferGroup(path, contentType string) TypeGroup {
	ct := strings.ToLower(contentType)
	ext := lowerExt(path)

	if strings.Contains(ct, "public.image") || inSet(imageExts, ext) {
		return GroupImage
	}
	if strings.Contains(ct, "public.movie") || inSet(videoExts, ext) {
		return GroupVideo
	}
	if strings.Contains(ct, "archive") || inSet(archiveExts, ext) {
		return GroupArchive
	}
	return GroupOther
}

// IsPDF reports whether the content type or extension indicates a PDF.
// PDFs are exempt from the size threshold.
func IsPDF(path, contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "pdf") || lowerExt(path) == ".pdf"
}

func inSet(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
