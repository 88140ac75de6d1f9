package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacantvectors/postcraft/internal/models"
)

func mediumRequest() models.GenerationRequest {
	return models.GenerationRequest{
		Topic:    "Internship",
		Length:   models.LengthMedium,
		Language: models.LanguageEnglish,
	}
}

func TestValidateEmptyOutputFails(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t\n"} {
		_, err := Validate(raw, mediumRequest())
		require.Error(t, err)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, KindEmptyOutput, verr.Kind)
	}
}

func TestValidateTooShortFails(t *testing.T) {
	_, err := Validate("hi", mediumRequest())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, KindTooShort, verr.Kind)
	assert.Equal(t, "hi", verr.Output)
}

func TestValidateLineCountBand(t *testing.T) {
	cases := []struct {
		bucket models.LengthBucket
		max    int
	}{
		{models.LengthShort, 6},
		{models.LengthMedium, 11},
		{models.LengthLong, 16},
	}

	for _, tc := range cases {
		req := mediumRequest()
		req.Length = tc.bucket

		within := strings.Repeat("a line of post text\n", tc.max-1) + "last line"
		post, err := Validate(within, req)
		require.NoError(t, err, "bucket %s should accept %d lines", tc.bucket, tc.max)
		assert.Equal(t, tc.max, post.LineCount)

		over := within + "\none line too many"
		_, err = Validate(over, req)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "bucket %s should reject %d lines", tc.bucket, tc.max+1)
		assert.Equal(t, KindLineCountHigh, verr.Kind)
	}
}

func TestValidateHashtagWarning(t *testing.T) {
	req := mediumRequest()
	req.IncludeHashtags = true

	post, err := Validate("A perfectly fine post without any tags at all.", req)
	require.NoError(t, err)
	require.Len(t, post.Warnings, 1)
	assert.Contains(t, post.Warnings[0], "hashtags")

	post, err = Validate("A post that delivers #Growth and #Learning.", req)
	require.NoError(t, err)
	assert.Empty(t, post.Warnings)
	assert.Equal(t, 2, post.HashtagCount)
}

func TestValidateRefusalWarning(t *testing.T) {
	post, err := Validate("I cannot write about that topic, but here is something else.", mediumRequest())
	require.NoError(t, err)
	require.NotEmpty(t, post.Warnings)
	assert.Contains(t, post.Warnings[0], "refusal")
}

func TestValidateTrimsAndCounts(t *testing.T) {
	post, err := Validate("  First line of the post\nSecond line here  \n", mediumRequest())
	require.NoError(t, err)
	assert.Equal(t, "First line of the post\nSecond line here", post.Text)
	assert.Equal(t, 2, post.LineCount)
	assert.Equal(t, 8, post.WordCount)
}
