package domain

// SortMode - активный режим сортировки списка.
type SortMode string

const (
	SortLatest      SortMode = "latest"
	SortOldest      SortMode = "oldest"
	SortAreaHigh    SortMode = "area_high"
	SortAreaLow     SortMode = "area_low"
	SortDepositHigh SortMode = "deposit_high"
	SortDepositLow  SortMode = "deposit_low"
	SortRentHigh    SortMode = "rent_high"
	SortRentLow     SortMode = "rent_low"
	SortDefault     SortMode = "default"
)

func (m SortMode) Known() bool {
	switch m {
	case SortLatest, SortOldest, SortAreaHigh, SortAreaLow, SortDepositHigh,
		SortDepositLow, SortRentHigh, SortRentLow, SortDefault:
		return true
	}
	return false
}

// SortFamily - кнопка сортировки, у каждой свой цикл режимов.
type SortFamily string

const (
	FamilyLatest  SortFamily = "latest"
	FamilyArea    SortFamily = "area"
	FamilyDeposit SortFamily = "deposit"
	FamilyRent    SortFamily = "rent"
	// FamilyIndex есть в интерфейсе, но сортировка по индексу не реализована.
	FamilyIndex SortFamily = "index"
)

// SortCycles - циклы режимов для каждой кнопки.
var SortCycles = map[SortFamily][]SortMode{
	FamilyLatest:  {SortLatest, SortOldest, SortDefault},
	FamilyArea:    {SortAreaHigh, SortAreaLow, SortDefault},
	FamilyDeposit: {SortDepositLow, SortDepositHigh, SortDefault},
	FamilyRent:    {SortRentLow, SortRentHigh, SortDefault},
}

// InitialSortMode - режим сортировки новой сессии.
const InitialSortMode = SortLatest

// NewSortPositions возвращает позиции всех циклов, равные нулю.
func NewSortPositions() map[SortFamily]int {
	pos := make(map[SortFamily]int, len(SortCycles))
	for f := range SortCycles {
		pos[f] = 0
	}
	return pos
}
