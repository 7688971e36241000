package course

import "time"

type Course struct {
	ID          uint      `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Category    string    `json:"category"`
	Thumbnail   string    `json:"thumbnail"`
	Price       int64     `json:"price"`
	Discount    int64     `json:"discount"`
	Duration    string    `json:"duration"`
	IsFeatured  bool      `json:"is_featured"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	StudentCount int `json:"student_count"`
}

// FinalPrice is the listed price after discount, never below zero.
func (c *Course) FinalPrice() int64 {
	final := c.Price - c.Discount
	if final < 0 {
		return 0
	}
	return final
}

// Free reports whether the course costs nothing after discount.
func (c *Course) Free() bool {
	return c.FinalPrice() == 0
}

type Enrollment struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	CourseID  uint      `json:"course_id"`
	CreatedAt time.Time `json:"created_at"`

	Course *Course `json:"course,omitempty"`
}

type ListFilter struct {
	Search   string
	Category string
	Featured bool
	Limit    int
	Offset   int
}
