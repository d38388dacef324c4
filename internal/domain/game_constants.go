package domain

const (
	// MinPlayers is the smallest player count a game can start with.
	MinPlayers = 2

	// HandCardCount is the hand size dealt at setup and redrawn each turn.
	HandCardCount = 5

	// StartingTerritoryCount and StartingSuccessionCount shape the ten-card
	// personal deck every player starts from.
	StartingTerritoryCount  = 7
	StartingSuccessionCount = 3

	// CurseCardCountPerPlayer scales the shared curse pool at setup.
	CurseCardCountPerPlayer = 4

	// MinEliminationCoin and MaxEliminationCoin bound the hand-elimination
	// territory choice.
	MinEliminationCoin = 2
	MaxEliminationCoin = 5

	// DomainTerritoryLimit caps the territories fixed into a domain.
	DomainTerritoryLimit = 3

	// CoronationCeremonyRequirementPoints gates the ceremony declaration.
	CoronationCeremonyRequirementPoints = 20

	// OvertimeWinnerRequirementPoints wins the game during overtime.
	OvertimeWinnerRequirementPoints = 30
)
