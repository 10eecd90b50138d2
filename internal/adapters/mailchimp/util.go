package mailchimp

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"strings"

	perr "leadhopper/internal/platform/errors"
)

// Datacenter extracts the datacenter suffix from an API key ("...-us7").
// The suffix picks the API host the account lives on
func Datacenter(apiKey string) (string, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return "", perr.InvalidArgf("mailchimp api key is empty")
	}
	i := strings.LastIndex(key, "-")
	if i < 0 || i == len(key)-1 {
		return "", perr.InvalidArgf("mailchimp api key has no datacenter suffix")
	}
	return key[i+1:], nil
}

// SubscriberHash returns the member id for an email address:
// the md5 of its lowercased form
func SubscriberHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:])
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
