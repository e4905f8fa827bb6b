package model

// DefaultCatalogue returns a starter board catalogue with common European
// sheet-goods sizes. Prices are placeholders the user is expected to edit.
func DefaultCatalogue() []BoardType {
	return []BoardType{
		NewBoardType("Full sheet 2440x1220", 2440, 1220, 45.00),
		NewBoardType("Half sheet 1220x1220", 1220, 1220, 25.00),
		NewBoardType("Quarter sheet 1220x610", 1220, 610, 14.00),
		NewBoardType("Cut panel 800x400", 800, 400, 9.00),
		NewBoardType("Cut panel 600x300", 600, 300, 5.00),
	}
}
