package entity

// Amenity is a feature places can offer (wifi, pool, ...). Names are unique
// by convention; the durable backend enforces it, construction does not.
type Amenity struct {
	Base
	Name string `json:"name"`
}

func NewAmenity(name string) (*Amenity, error) {
	if err := requireString("name", name, 50); err != nil {
		return nil, err
	}
	return &Amenity{Base: NewBase(), Name: name}, nil
}

type AmenityPatch struct {
	Name *string
}

func (a *Amenity) Update(p AmenityPatch) error {
	if p.Name != nil {
		if err := requireString("name", *p.Name, 50); err != nil {
			return err
		}
		a.Name = *p.Name
	}
	a.Touch()
	return nil
}
