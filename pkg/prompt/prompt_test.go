package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/pkg/prompt"
)

func TestExtractTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		expected []string
	}{
		{
			name:     "duplicates collapse in first occurrence order",
			template: "[a] x [b] [a]",
			expected: []string{"a", "b"},
		},
		{
			name:     "no brackets",
			template: "plain text",
			expected: []string{},
		},
		{
			name:     "non-greedy span",
			template: "[top] and [bottom]",
			expected: []string{"top", "bottom"},
		},
		{
			name:     "multi-byte tag names",
			template: "Wearing [上衣顏色] [上衣類型] with [上衣顏色]",
			expected: []string{"上衣顏色", "上衣類型"},
		},
		{
			name:     "span does not cross newline",
			template: "[open\nclose] [ok]",
			expected: []string{"ok"},
		},
		{
			name:     "empty brackets yield empty tag",
			template: "a [] b",
			expected: []string{""},
		},
		{
			name:     "nested brackets are not special",
			template: "[[inner]]",
			expected: []string{"[inner"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, prompt.ExtractTags(tt.template))
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tags, err := prompt.Detect("Wearing [color] [item]")
	require.NoError(t, err)
	assert.Equal(t, []string{"color", "item"}, tags)

	tags, err = prompt.Detect("nothing to detect")
	assert.ErrorIs(t, err, prompt.ErrNoTagsDetected)
	assert.Empty(t, tags)
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "No.001", prompt.Label(1))
	assert.Equal(t, "No.007", prompt.Label(7))
	assert.Equal(t, "No.123", prompt.Label(123))
	assert.Equal(t, "No.1234", prompt.Label(1234))
}

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("substitutes in tag order", func(t *testing.T) {
		t.Parallel()
		out := prompt.Render("Wearing [color] [item]", []prompt.Fill{
			{Tag: "color", Value: "red"},
			{Tag: "item", Value: "hat"},
		}, 7)
		assert.Equal(t, "No.007 Wearing red hat", out)
	})

	t.Run("only the first occurrence of a repeated tag is replaced", func(t *testing.T) {
		t.Parallel()
		out := prompt.Substitute("[a] and [a] and [b]", []prompt.Fill{
			{Tag: "a", Value: "x"},
			{Tag: "b", Value: "y"},
		})
		assert.Equal(t, "x and [a] and y", out)
	})

	t.Run("inserted value can hold the placeholder of its own tag", func(t *testing.T) {
		t.Parallel()
		out := prompt.Substitute("[a]-[a]", []prompt.Fill{{Tag: "a", Value: "[a]!"}})
		assert.Equal(t, "[a]!-[a]", out)
	})

	t.Run("later tag sees text inserted by an earlier tag", func(t *testing.T) {
		t.Parallel()
		out := prompt.Substitute("[a] [b]", []prompt.Fill{
			{Tag: "a", Value: "[b]"},
			{Tag: "b", Value: "y"},
		})
		assert.Equal(t, "y [b]", out)
	})

	t.Run("consumed tag is a no-op", func(t *testing.T) {
		t.Parallel()
		out := prompt.Substitute("[a]", []prompt.Fill{
			{Tag: "a", Value: "x"},
			{Tag: "a", Value: "z"},
		})
		assert.Equal(t, "x", out)
	})

	t.Run("missing value keeps placeholder", func(t *testing.T) {
		t.Parallel()
		out := prompt.Render("[color] [item]", []prompt.Fill{
			{Tag: "color", Missing: true},
			{Tag: "item", Value: "hat"},
		}, 1)
		assert.Equal(t, "No.001 [color] hat", out)
	})

	t.Run("absent placeholder is a no-op", func(t *testing.T) {
		t.Parallel()
		out := prompt.Substitute("only [a]", []prompt.Fill{
			{Tag: "a", Value: "x"},
			{Tag: "zzz", Value: "y"},
		})
		assert.Equal(t, "only x", out)
	})

	t.Run("idempotent for the same inputs", func(t *testing.T) {
		t.Parallel()
		fills := []prompt.Fill{{Tag: "色", Value: "紅"}}
		first := prompt.Render("穿著[色]", fills, 3)
		second := prompt.Render("穿著[色]", fills, 3)
		assert.Equal(t, first, second)
		assert.Equal(t, "No.003 穿著紅", first)
	})
}

func TestNormalizeNewlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "a\r\nb", want: "a\nb"},
		{in: "a\rb", want: "a\nb"},
		{in: "a\r\r\nb", want: "a\n\nb"},
		{in: "a\nb", want: "a\nb"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, prompt.NormalizeNewlines(tt.in), "%q", tt.in)
	}
}
