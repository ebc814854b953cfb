package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

// Response shapes understood by Parse.
const (
	ShapeFlat   = "flat"   // [verse...] or {"verses": [...]}
	ShapeNested = "nested" // {"chapters": [{"chapter"|"number": n, "verses": [...]}]}
)

// ParseResult is a successfully parsed chapter body.
type ParseResult struct {
	Shape  string
	Verses []scripture.Verse
	// MissingText counts records kept with empty text.
	MissingText int
	// Positional counts records numbered by position because neither verse nor number was at least 1.
	Positional int
}

// flexInt accepts 3 or "3".
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*n = flexInt(v)
	return nil
}

type verseRecord struct {
	Verse  *flexInt `json:"verse"`
	Number *flexInt `json:"number"`
	Text   *string  `json:"text"`
	Title  string   `json:"title"`
}

type chapterRecord struct {
	Chapter *flexInt      `json:"chapter"`
	Number  *flexInt      `json:"number"`
	Verses  []verseRecord `json:"verses"`
}

type container struct {
	Verses   json.RawMessage `json:"verses"`
	Chapters []chapterRecord `json:"chapters"`
}

// Parse decodes a chapter body for key. The flat shape is tried first, then the
// nested shape, where the entry whose chapter (or number) equals key.Chapter is used.
// Verses are stamped with key's book and chapter. A body yielding no verses is malformed.
func Parse(body []byte, key scripture.ChapterKey) (ParseResult, error) {
	location := key.String()
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ParseResult{}, errors.NewMalformedResponse(location, "empty body")
	}

	if trimmed[0] == '[' {
		var records []verseRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return ParseResult{}, errors.NewMalformedResponse(location, err.Error())
		}
		return build(ShapeFlat, records, key)
	}

	var c container
	if err := json.Unmarshal(trimmed, &c); err != nil {
		return ParseResult{}, errors.NewMalformedResponse(location, err.Error())
	}

	if len(c.Verses) > 0 && !bytes.Equal(c.Verses, []byte("null")) {
		var records []verseRecord
		err := json.Unmarshal(c.Verses, &records)
		if err == nil {
			return build(ShapeFlat, records, key)
		}
		if c.Chapters == nil {
			return ParseResult{}, errors.NewMalformedResponse(location, err.Error())
		}
	}

	if c.Chapters != nil {
		for _, ch := range c.Chapters {
			n := ch.Chapter
			if n == nil {
				n = ch.Number
			}
			if n != nil && int(*n) == key.Chapter {
				return build(ShapeNested, ch.Verses, key)
			}
		}
		return ParseResult{}, errors.NewMalformedResponse(location, fmt.Sprintf("chapter %d not in container", key.Chapter))
	}

	return ParseResult{}, errors.NewMalformedResponse(location, "neither verses nor chapters present")
}

func build(shape string, records []verseRecord, key scripture.ChapterKey) (ParseResult, error) {
	if len(records) == 0 {
		return ParseResult{}, errors.NewMalformedResponse(key.String(), "no verses")
	}

	res := ParseResult{Shape: shape, Verses: make([]scripture.Verse, 0, len(records))}
	for i, r := range records {
		v := scripture.Verse{Book: key.Book, Chapter: key.Chapter, Title: r.Title}
		switch {
		case r.Verse != nil && *r.Verse >= 1:
			v.Verse = int(*r.Verse)
		case r.Number != nil && *r.Number >= 1:
			v.Verse = int(*r.Number)
		default:
			// Missing or below 1: the position stands in.
			v.Verse = i + 1
			res.Positional++
		}
		if r.Text != nil {
			v.Text = *r.Text
		}
		if strings.TrimSpace(v.Text) == "" {
			res.MissingText++
		}
		res.Verses = append(res.Verses, v)
	}
	return res, nil
}
