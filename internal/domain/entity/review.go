package entity

// Review is feedback a user left on a place. The place and author
// references are fixed at construction; updates can only change text and
// rating.
type Review struct {
	Base
	Text    string `json:"text"`
	Rating  int    `json:"rating"`
	PlaceID string `json:"place_id"`
	UserID  string `json:"user_id"`

	Place *Place `json:"-"`
	User  *User  `json:"-"`
}

type NewReviewInput struct {
	Text    string
	Rating  int
	PlaceID string
	UserID  string
}

func NewReview(in NewReviewInput) (*Review, error) {
	if err := requireString("text", in.Text, 0); err != nil {
		return nil, err
	}
	if err := validateRating(in.Rating); err != nil {
		return nil, err
	}
	if err := requireString("place_id", in.PlaceID, 0); err != nil {
		return nil, err
	}
	if err := requireString("user_id", in.UserID, 0); err != nil {
		return nil, err
	}
	return &Review{
		Base:    NewBase(),
		Text:    in.Text,
		Rating:  in.Rating,
		PlaceID: in.PlaceID,
		UserID:  in.UserID,
	}, nil
}

type ReviewPatch struct {
	Text   *string
	Rating *int
}

func (r *Review) Update(p ReviewPatch) error {
	if p.Text != nil {
		if err := requireString("text", *p.Text, 0); err != nil {
			return err
		}
	}
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return err
		}
	}

	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	r.Touch()
	return nil
}
