package dataset

// Canonical column names shared by both datasets after normalization.
const (
	ColYear           = "Curs Acadèmic"
	ColUniversityType = "Tipus universitat"
	ColAcronym        = "Sigles"
	ColStudyType      = "Tipus Estudi"
	ColBranch         = "Branca"
	ColSex            = "Sexe"
	ColIntegrated     = "Integrat S/N"

	ColPerformance = "Taxa rendiment"
	ColDropout     = "% Abandonament a primer curs"
)

// KeyColumns returns the seven categorical dimensions records are grouped and
// joined on.
func KeyColumns() []string {
	return []string{ColYear, ColUniversityType, ColAcronym, ColStudyType, ColBranch, ColSex, ColIntegrated}
}
