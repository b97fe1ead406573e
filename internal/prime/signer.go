package prime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Sign computes the X-CB-ACCESS-SIGNATURE value: base64(HMAC-SHA256(signingKey,
// timestamp + method + path + body)). path never includes the query string.
func Sign(signingKey, timestamp, method, path, body string) string {
	mac := hmac.New(sha256.New, []byte(signingKey))
	mac.Write([]byte(timestamp + method + path + body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
