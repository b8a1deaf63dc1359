package entity

// Place is a rental listing owned by exactly one user. It references its
// reviews and amenities by id; the Owner pointer is resolved by the facade
// when needed and never serialized.
type Place struct {
	Base
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	ReviewIDs   []string `json:"review_ids"`
	AmenityIDs  []string `json:"amenity_ids"`

	Owner *User `json:"-"`
}

type NewPlaceInput struct {
	Title       string
	Description string
	Price       float64
	Latitude    float64
	Longitude   float64
	OwnerID     string
}

func NewPlace(in NewPlaceInput) (*Place, error) {
	if err := requireString("title", in.Title, 100); err != nil {
		return nil, err
	}
	if err := validatePrice(in.Price); err != nil {
		return nil, err
	}
	if err := validateLatitude(in.Latitude); err != nil {
		return nil, err
	}
	if err := validateLongitude(in.Longitude); err != nil {
		return nil, err
	}
	if err := requireString("owner_id", in.OwnerID, 0); err != nil {
		return nil, err
	}
	return &Place{
		Base:        NewBase(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		OwnerID:     in.OwnerID,
		ReviewIDs:   []string{},
		AmenityIDs:  []string{},
	}, nil
}

// PlacePatch deliberately has no owner slot: the owner reference is
// immutable after creation.
type PlacePatch struct {
	Title       *string
	Description *string
	Price       *float64
	Latitude    *float64
	Longitude   *float64
}

// Update validates every present field before applying any of them.
func (p *Place) Update(patch PlacePatch) error {
	if patch.Title != nil {
		if err := requireString("title", *patch.Title, 100); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return err
		}
	}
	if patch.Latitude != nil {
		if err := validateLatitude(*patch.Latitude); err != nil {
			return err
		}
	}
	if patch.Longitude != nil {
		if err := validateLongitude(*patch.Longitude); err != nil {
			return err
		}
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Latitude != nil {
		p.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		p.Longitude = *patch.Longitude
	}
	p.Touch()
	return nil
}

// AddReview appends a review reference. The review must already point back
// at this place.
func (p *Place) AddReview(r *Review) error {
	if r.PlaceID != p.ID {
		return invalid("review", "must reference this place")
	}
	for _, id := range p.ReviewIDs {
		if id == r.ID {
			return nil
		}
	}
	p.ReviewIDs = append(p.ReviewIDs, r.ID)
	p.Touch()
	return nil
}

// RemoveReview detaches a review reference. Unknown ids are ignored.
func (p *Place) RemoveReview(reviewID string) {
	for i, id := range p.ReviewIDs {
		if id == reviewID {
			p.ReviewIDs = append(p.ReviewIDs[:i], p.ReviewIDs[i+1:]...)
			p.Touch()
			return
		}
	}
}

// AddAmenity attaches an amenity with set semantics.
func (p *Place) AddAmenity(a *Amenity) {
	for _, id := range p.AmenityIDs {
		if id == a.ID {
			return
		}
	}
	p.AmenityIDs = append(p.AmenityIDs, a.ID)
	p.Touch()
}

// RemoveAmenity detaches an amenity. Unknown ids are ignored.
func (p *Place) RemoveAmenity(amenityID string) {
	for i, id := range p.AmenityIDs {
		if id == amenityID {
			p.AmenityIDs = append(p.AmenityIDs[:i], p.AmenityIDs[i+1:]...)
			p.Touch()
			return
		}
	}
}

func (p *Place) HasAmenity(amenityID string) bool {
	for _, id := range p.AmenityIDs {
		if id == amenityID {
			return true
		}
	}
	return false
}
