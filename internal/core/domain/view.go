package domain

// ListingView - результат прохода пайплайна, который получают список и карта.
type ListingView struct {
	Items []Listing
	// Total - сколько объявлений прошло фильтры (до фильтра брифинга).
	Total int
	// Filtered - сколько осталось после фильтра брифинга.
	Filtered int
	// Loaded - размер рабочего набора.
	Loaded int

	SortMode   SortMode
	Effective  FilterSet
	FetchError string
}

// ViewMode - режим таблицы брифинга: исходные данные или с правками.
type ViewMode string

const (
	ViewOriginal ViewMode = "original"
	ViewEdited   ViewMode = "edited"
)

func ParseViewMode(raw string) ViewMode {
	if ViewMode(raw) == ViewEdited {
		return ViewEdited
	}
	return ViewOriginal
}

type BriefingListItem struct {
	Listing Listing
	Status  BriefingStatus
	Edited  bool
}

// BriefingListView - список объектов со статусом брифинга, отличным от normal.
type BriefingListView struct {
	Items    []BriefingListItem
	Total    int
	Briefing int
	Filtered int
	Mode     ViewMode
}

// BriefingStats - количество объектов по статусам.
type BriefingStats struct {
	Normal    int `json:"normal"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	OnHold    int `json:"onhold"`
}

type ClusterSize string

const (
	ClusterSmall ClusterSize = "small"
	ClusterMid   ClusterSize = "mid"
	ClusterBig   ClusterSize = "big"
)

// ClusterSummary - сводка брифинга по группе объектов одной ячейки карты.
type ClusterSummary struct {
	Geohash    string
	Lat        float64
	Lng        float64
	Count      int
	Size       ClusterSize
	Stats      BriefingStats
	Primary    BriefingStatus
	ListingIDs []ListingID
}
