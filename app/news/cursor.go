package news

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrInvalidCursor    = errors.New("invalid last_retrieved_id")
	ErrInvalidDirection = errors.New("navigation must be 'next' or 'previous'")
)

type Direction string

const (
	DirectionNext     Direction = "next"
	DirectionPrevious Direction = "previous"
)

// Cursor describes one page request. A nil LastID asks for the newest item.
type Cursor struct {
	LastID    *int64
	Direction Direction
	Category  string
}

// ParseCursor validates raw query values. An empty navigation means next and
// an empty category means no filter.
func ParseCursor(lastID, navigation, category string) (Cursor, error) {
	cursor := Cursor{
		Direction: DirectionNext,
		Category:  strings.TrimSpace(category),
	}

	switch Direction(strings.ToLower(strings.TrimSpace(navigation))) {
	case "", DirectionNext:
	case DirectionPrevious:
		cursor.Direction = DirectionPrevious
	default:
		return Cursor{}, ErrInvalidDirection
	}

	if lastID = strings.TrimSpace(lastID); lastID != "" {
		id, err := strconv.ParseInt(lastID, 10, 64)
		if err != nil || id <= 0 {
			return Cursor{}, ErrInvalidCursor
		}
		cursor.LastID = &id
	}

	return cursor, nil
}
