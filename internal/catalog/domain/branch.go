package domain

type ReviewAuthor struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Review struct {
	ID         string       `json:"id,omitempty"`
	Rating     int          `json:"rating"`
	Title      string       `json:"title,omitempty"`
	Body       string       `json:"body,omitempty"`
	AdminReply string       `json:"adminReply,omitempty"`
	CreatedAt  string       `json:"createdAt,omitempty"`
	User       ReviewAuthor `json:"user"`
}

type Branch struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Area        string   `json:"area"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	OpeningTime string   `json:"openingTime"`
	ClosingTime string   `json:"closingTime"`
	WorkingDays string   `json:"workingDays"`
	ImageURL    string   `json:"imageUrl"`
	AvgRating   float64  `json:"avgRating"`
	ReviewCount int      `json:"reviewCount"`
	Reviews     []Review `json:"reviews,omitempty"`
}
