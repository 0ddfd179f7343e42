package domain

import "fmt"

// POIType is a top-level POI category.
type POIType string

const (
	TypeSpot       POIType = "spot"
	TypeStay       POIType = "stay"
	TypePlace      POIType = "place"
	TypeOliveYoung POIType = "oliveyoung"
	TypeDaiso      POIType = "daiso"
	TypeLotteMart  POIType = "lottemart"
)

// POITypes lists the top-level types in generation and display order.
var POITypes = []POIType{TypeSpot, TypeStay, TypePlace, TypeOliveYoung, TypeDaiso, TypeLotteMart}

// Category is the active top-level filter: a POIType or CategoryAll.
type Category string

// CategoryAll disables top-level filtering.
const CategoryAll Category = "all"

// Categories lists the filter bar entries in display order.
var Categories = []Category{
	CategoryAll,
	Category(TypeSpot), Category(TypeStay), Category(TypePlace),
	Category(TypeOliveYoung), Category(TypeDaiso), Category(TypeLotteMart),
}

// SpotSub is the second-level category, only meaningful for spots.
type SpotSub string

const (
	SubActivity SpotSub = "activity"
	SubHair     SpotSub = "hair"
	SubPhoto    SpotSub = "photo"
	SubSpa      SpotSub = "spa"
)

// SpotSubs lists second-level categories in round-robin order.
var SpotSubs = []SpotSub{SubActivity, SubHair, SubPhoto, SubSpa}

// SpotSub2 is the third-level category.
type SpotSub2 string

const (
	Sub2KPop     SpotSub2 = "kpop"
	Sub2Class    SpotSub2 = "class"
	Sub2Learn    SpotSub2 = "learn"
	Sub2Color    SpotSub2 = "color"
	Sub2Perm     SpotSub2 = "perm"
	Sub2Cut      SpotSub2 = "cut"
	Sub2Hanbok   SpotSub2 = "hanbok"
	Sub2ID       SpotSub2 = "id"
	Sub2Wedding  SpotSub2 = "wedding"
	Sub2Luxury   SpotSub2 = "luxury"
	Sub2Wellness SpotSub2 = "wellness"
)

// Valid reports whether t is one of the closed set of POI types.
func (t POIType) Valid() bool {
	switch t {
	case TypeSpot, TypeStay, TypePlace, TypeOliveYoung, TypeDaiso, TypeLotteMart:
		return true
	}
	return false
}

// DetailEligible reports whether the type has an expanded detail view.
func (t POIType) DetailEligible() bool {
	switch t {
	case TypeOliveYoung, TypeDaiso, TypeLotteMart:
		return true
	}
	return false
}

// HasOffer reports whether POIs of this type carry price, rating, and reviews.
func (t POIType) HasOffer() bool {
	return t == TypeSpot || t == TypeStay
}

// Label returns the filter-bar label.
func (t POIType) Label() string {
	switch t {
	case TypeSpot:
		return "Spot"
	case TypeStay:
		return "Stay"
	case TypePlace:
		return "Place"
	case TypeOliveYoung:
		return "Oliveyoung"
	case TypeDaiso:
		return "Daiso"
	case TypeLotteMart:
		return "LotteMart"
	}
	return string(t)
}

// MarkerColor returns the marker background color.
func (t POIType) MarkerColor() string {
	switch t {
	case TypeSpot:
		return "#ef4444"
	case TypeStay:
		return "#10b981"
	case TypePlace:
		return "#6366f1"
	case TypeOliveYoung:
		return "#ec4899"
	case TypeDaiso:
		return "#f59e0b"
	case TypeLotteMart:
		return "#3b82f6"
	}
	return "#6b7280"
}

// Title returns the display name of the i-th (zero-based) POI of this type in a batch.
func (t POIType) Title(i int) string {
	n := i + 1
	switch t {
	case TypeSpot:
		return fmt.Sprintf("서울 투어 %d", n)
	case TypeStay:
		return fmt.Sprintf("서울 호텔 %d", n)
	case TypePlace:
		return fmt.Sprintf("서울 명소 %d", n)
	case TypeOliveYoung:
		return fmt.Sprintf("올리브영 %d호점", n)
	case TypeDaiso:
		return fmt.Sprintf("다이소 %d호점", n)
	case TypeLotteMart:
		return fmt.Sprintf("롯데마트 %d점", n)
	}
	return fmt.Sprintf("%s %d", t, n)
}

// Valid reports whether c is "all" or a POI type.
func (c Category) Valid() bool {
	return c == CategoryAll || POIType(c).Valid()
}

// Label returns the filter-bar label.
func (c Category) Label() string {
	if c == CategoryAll {
		return "All"
	}
	return POIType(c).Label()
}

// Valid reports whether s is a known second-level category.
func (s SpotSub) Valid() bool {
	switch s {
	case SubActivity, SubHair, SubPhoto, SubSpa:
		return true
	}
	return false
}

// Label returns the sub-filter label.
func (s SpotSub) Label() string {
	switch s {
	case SubActivity:
		return "Activity"
	case SubHair:
		return "Hair"
	case SubPhoto:
		return "Photo"
	case SubSpa:
		return "Spa"
	}
	return string(s)
}

// Options returns the third-level categories registered for s.
func (s SpotSub) Options() []SpotSub2 {
	switch s {
	case SubActivity:
		return []SpotSub2{Sub2KPop, Sub2Class, Sub2Learn}
	case SubHair:
		return []SpotSub2{Sub2Color, Sub2Perm, Sub2Cut}
	case SubPhoto:
		return []SpotSub2{Sub2Hanbok, Sub2ID, Sub2Wedding}
	case SubSpa:
		return []SpotSub2{Sub2Luxury, Sub2Wellness}
	}
	return nil
}

// Allows reports whether s2 is registered under s.
func (s SpotSub) Allows(s2 SpotSub2) bool {
	for _, o := range s.Options() {
		if o == s2 {
			return true
		}
	}
	return false
}

// Label returns the third-level label.
func (s SpotSub2) Label() string {
	switch s {
	case Sub2KPop:
		return "KPop"
	case Sub2Class:
		return "Class"
	case Sub2Learn:
		return "Learn"
	case Sub2Color:
		return "Color"
	case Sub2Perm:
		return "Perm"
	case Sub2Cut:
		return "Cut"
	case Sub2Hanbok:
		return "Hanbok"
	case Sub2ID:
		return "ID"
	case Sub2Wedding:
		return "Wedding"
	case Sub2Luxury:
		return "Luxury"
	case Sub2Wellness:
		return "Wellness"
	}
	return string(s)
}
