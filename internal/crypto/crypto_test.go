package crypto

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloSum = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestHashBytes(t *testing.T) {
	assert.Equal(t, helloSum, HashBytes([]byte("hello")))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashBytes(nil))
}

func TestHashReader(t *testing.T) {
	sum, n, err := HashReader(strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, helloSum, sum)
	assert.Equal(t, int64(5), n)

	_, _, err = HashReader(iotest.ErrReader(errors.New("boom")))
	assert.EqualError(t, err, "boom")
}

func TestMatchesETag(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{`"` + helloSum + `"`, true},
		{`W/"` + helloSum + `"`, true},
		{`"other", "` + helloSum + `"`, true},
		{`*`, true},
		{`"other"`, false},
		{helloSum, false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesETag(tt.header, helloSum), tt.header)
	}
	assert.False(t, MatchesETag("*", ""))
}
