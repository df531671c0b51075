// pkg/entity/tag.go
package entity

// Tag is a category label used to filter interactions between entities
type Tag int

const (
	TagPlayer Tag = iota
	TagEnemy
	TagBullet
	TagHazard
	TagWall
	TagPickup
)

func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	case TagBullet:
		return "bullet"
	case TagHazard:
		return "hazard"
	case TagWall:
		return "wall"
	case TagPickup:
		return "pickup"
	default:
		return "unknown"
	}
}

// Tags is an ordered tag list with set semantics
type Tags []Tag

// NewTags builds a tag set, dropping duplicates
func NewTags(tags ...Tag) Tags {
	var s Tags
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add appends t unless it is already present
func (s *Tags) Add(t Tag) {
	if s.Has(t) {
		return
	}
	*s = append(*s, t)
}

// Has reports membership of t
func (s Tags) Has(t Tag) bool {
	for _, have := range s {
		if have == t {
			return true
		}
	}
	return false
}

// SharesAny reports whether s and other have at least one tag in common
func (s Tags) SharesAny(other Tags) bool {
	for _, t := range s {
		if other.Has(t) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy
func (s Tags) Clone() Tags {
	return append(Tags(nil), s...)
}
