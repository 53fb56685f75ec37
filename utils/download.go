package utils

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxDownloadSize caps the size of a remote image kept in memory.
const maxDownloadSize = 32 << 20

// DownloadImage retrieves the image from the provided URL and returns its raw content.
// The whole body is kept in memory, the caller decides where it will be written.
func DownloadImage(uri string) ([]byte, error) {
	res, err := http.Get(uri)
	if err != nil {
		return nil, fmt.Errorf("unable to download image file from URI: %s: %w", uri, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to download image file from URI: %s, status %v", uri, res.Status)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxDownloadSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read response body: %w", err)
	}

	if ctype := DetectContentType(data); !strings.Contains(ctype, "image") {
		return nil, fmt.Errorf("the downloaded file is not a valid image type: %s", ctype)
	}

	return data, nil
}

// IsValidUrl tests a string to determine if it is a well-structured url or not.
func IsValidUrl(uri string) bool {
	_, err := url.ParseRequestURI(uri)
	if err != nil {
		return false
	}

	u, err := url.Parse(uri)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// DetectContentType detects the MIME type of the provided content.
func DetectContentType(data []byte) string {
	// Only the first 512 bytes are used to sniff the content type.
	if len(data) > 512 {
		data = data[:512]
	}

	// Always returns a valid content-type and "application/octet-stream" if no others seemed to match.
	return http.DetectContentType(data)
}
