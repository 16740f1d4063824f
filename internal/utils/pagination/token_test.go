package pagination_test

import (
	"testing"
	"time"

	"github.com/clockwork-hr/attendance_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeIDTokenRoundTrip(t *testing.T) {
	ts := time.Date(2024, 7, 1, 9, 30, 15, 123456789, time.UTC)
	token := pagination.EncodeTimeIDToken(ts, "row-42")

	gotTS, gotID, err := pagination.DecodeTimeIDToken(token)
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTS))
	assert.Equal(t, "row-42", gotID)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeTimeIDToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeTimeIDToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
