package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewKey produces a storage key of the form
// {prefix}{unix-millis}_{token}{ext}, e.g. "article_1756600000000_a3f9c1d2e4b5.jpg".
//
// The millisecond timestamp keeps keys roughly sortable by upload time and
// the 48-bit random token (12 hex chars of a fresh UUID) makes collisions
// within the same millisecond implausible, so concurrent requests need no
// coordination and keys are never reused.
func NewKey(cat Category) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s%d_%s%s", cat.KeyPrefix, time.Now().UnixMilli(), token, OutputExt)
}
