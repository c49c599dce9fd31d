package sentence_test

import (
	"reflect"
	"testing"

	"github.com/book-expert/tts-gateway/internal/textproc/sentence"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "decimal numbers not split",
			text: "The value is 3.14 and the price is 99.5 today.",
			want: []string{"The value is 3.14 and the price is 99.5 today."},
		},
		{
			name: "sentence after decimal",
			text: "Temperature is 98.6. It's warm.",
			want: []string{"Temperature is 98.6.", "It's warm."},
		},
		{
			name: "multiple decimals",
			text: "Values: 3.14, 2.71, 1.41 are important.",
			want: []string{"Values: 3.14, 2.71, 1.41 are important."},
		},
		{
			name: "abbreviations",
			text: "Dr. Smith went to Mt. Everest.",
			want: []string{"Dr. Smith went to Mt. Everest."},
		},
		{
			name: "decimal and next sentence",
			text: "The value is 3.14. Next sentence.",
			want: []string{"The value is 3.14.", "Next sentence."},
		},
		{
			name: "initials",
			text: "J. K. Rowling wrote books.",
			want: []string{"J. K. Rowling wrote books."},
		},
		{
			name: "multiple sentences",
			text: "First sentence. Second sentence! Third question?",
			want: []string{"First sentence.", "Second sentence!", "Third question?"},
		},
		{
			name: "etc",
			text: "We need apples, oranges, etc. for the party.",
			want: []string{"We need apples, oranges, etc. for the party."},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "single sentence",
			text: "Hello world!",
			want: []string{"Hello world!"},
		},
		{
			name: "no ending punctuation",
			text: "This has no ending punctuation",
			want: []string{"This has no ending punctuation"},
		},
		{
			name: "urls not split",
			text: "Visit www.example.com for info.",
			want: []string{"Visit www.example.com for info."},
		},
		{
			name: "mixed punctuation",
			text: "First. Second! Third? Fourth.",
			want: []string{"First.", "Second!", "Third?", "Fourth."},
		},
		{
			name: "decimal at end",
			text: "The value is 3.14",
			want: []string{"The value is 3.14"},
		},
		{
			name: "decimal followed by lowercase",
			text: "The value is 3.14 meters.",
			want: []string{"The value is 3.14 meters."},
		},
		{
			name: "trailing period after decimal",
			text: "Pi is approximately 3.14159.",
			want: []string{"Pi is approximately 3.14159."},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := sentence.Split(tc.text)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Split(%q) = %#v, want %#v", tc.text, got, tc.want)
			}
		})
	}
}
