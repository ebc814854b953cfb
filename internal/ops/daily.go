package ops

import (
	"fmt"
	"strings"
	"time"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

// DailyOutput contains the verse of the day.
type DailyOutput struct {
	Date  string          `json:"date"`
	Verse scripture.Verse `json:"verse"`
}

// Daily picks the verse of the day for date. The pick depends only on the UTC
// calendar day, so every device shows the same verse without a network.
func (e *Engine) Daily(date time.Time) DailyOutput {
	pool := dailyPool(e.topics)
	y, m, d := date.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	n := int64(len(pool))
	idx := (day.Unix()/86400%n + n) % n

	return DailyOutput{Date: day.Format(time.DateOnly), Verse: pool[idx]}
}

// dailyPool is the seed verses followed by the topic verses, without repeats.
func dailyPool(topics scripture.TopicTable) []scripture.Verse {
	type ref struct {
		book           string
		chapter, verse int
	}
	seen := make(map[ref]bool)
	var pool []scripture.Verse
	add := func(v scripture.Verse) {
		r := ref{scripture.Normalize(v.Book), v.Chapter, v.Verse}
		if !seen[r] {
			seen[r] = true
			pool = append(pool, v)
		}
	}

	for _, v := range scripture.SeedVerses() {
		add(v)
	}
	for _, entry := range topics {
		for _, v := range entry.Verses {
			add(v)
		}
	}
	return pool
}

// ParseDay parses a YYYY-MM-DD date. Blank input means now.
func ParseDay(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest(fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", s))
	}
	return t, nil
}
