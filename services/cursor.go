package services

// QuestionCursor is the active-question pointer for a live interview: a plain
// index into the canonical question sequence, movable by one in either
// direction or by direct selection, never past the bounds and never wrapping.
type QuestionCursor struct {
	index  int
	length int
}

func NewQuestionCursor(length int) *QuestionCursor {
	if length < 0 {
		length = 0
	}
	return &QuestionCursor{length: length}
}

func (c *QuestionCursor) Index() int { return c.index }

func (c *QuestionCursor) Length() int { return c.length }

func (c *QuestionCursor) Next() bool {
	if c.index >= c.length-1 {
		return false
	}
	c.index++
	return true
}

func (c *QuestionCursor) Prev() bool {
	if c.index <= 0 {
		return false
	}
	c.index--
	return true
}

func (c *QuestionCursor) Select(i int) bool {
	if i < 0 || i >= c.length {
		return false
	}
	c.index = i
	return true
}

// AtEnd reports whether the cursor sits on the last question of a non-empty
// set. The end-interview control is only offered then.
func (c *QuestionCursor) AtEnd() bool {
	return c.length > 0 && c.index == c.length-1
}
