package domain

const (
	// Field length bounds re-enforced at the ledger layer since the UI is
	// an untrusted caller
	MaxNameLength        = 100
	MaxDescriptionLength = 1000

	// ContentURIPrefix is the synthesized content reference namespace used
	// when the caller does not supply one at mint time
	ContentURIPrefix = "ipfs://asset-verse/"
)
