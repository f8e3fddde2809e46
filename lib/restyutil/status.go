package restyutil

import (
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// ErrUnexpectedStatus is wrapped by every error CheckStatus returns.
var ErrUnexpectedStatus = errors.New("unexpected status")

// CheckStatus accepts 2xx responses only. Redirects resty did not follow
// count as failures too.
func CheckStatus(res *resty.Response) error {
	if res.StatusCode() >= 200 && res.StatusCode() < 300 {
		return nil
	}
	return fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, res.StatusCode(), res.Request.URL)
}
