package domain

// BiosecurityCategory groups three practice questions.
type BiosecurityCategory string

const (
	CategoryHygiene       BiosecurityCategory = "hygiene"
	CategoryAccessControl BiosecurityCategory = "accessControl"
	CategoryQuarantine    BiosecurityCategory = "quarantine"
	CategoryPestControl   BiosecurityCategory = "pestControl"
	CategoryFeedWater     BiosecurityCategory = "feedWater"
)

// BiosecurityQuestion identifies one practice on the checklist. The ids "visitors" and
// "sickAnimals" also exist in the risk checker; the typed ids keep the two sets apart.
type BiosecurityQuestion string

const (
	PracticeCleaning         BiosecurityQuestion = "cleaning"
	PracticeDisinfection     BiosecurityQuestion = "disinfection"
	PracticeWaste            BiosecurityQuestion = "waste"
	PracticeVisitors         BiosecurityQuestion = "visitors"
	PracticeEquipment        BiosecurityQuestion = "equipment"
	PracticeVehicles         BiosecurityQuestion = "vehicles"
	PracticeNewAnimals       BiosecurityQuestion = "newAnimals"
	PracticeSickAnimals      BiosecurityQuestion = "sickAnimals"
	PracticeReturningAnimals BiosecurityQuestion = "returningAnimals"
	PracticeRodents          BiosecurityQuestion = "rodents"
	PracticeWildBirds        BiosecurityQuestion = "wildBirds"
	PracticeInsects          BiosecurityQuestion = "insects"
	PracticeFeedQuality      BiosecurityQuestion = "feedQuality"
	PracticeWaterQuality     BiosecurityQuestion = "waterQuality"
	PracticeStorage          BiosecurityQuestion = "storage"
)

// BiosecurityMaxPerQuestion is the slider maximum for every practice.
const BiosecurityMaxPerQuestion = 20

// BiosecurityPractice is a single slider on the checklist.
type BiosecurityPractice struct {
	ID    BiosecurityQuestion
	Label string
}

// BiosecurityCategoryDef is a titled group of practices.
type BiosecurityCategoryDef struct {
	ID        BiosecurityCategory
	Label     string
	Practices []BiosecurityPractice
}

// BiosecurityCategories returns the checklist in display order.
func BiosecurityCategories() []BiosecurityCategoryDef {
	return []BiosecurityCategoryDef{
		{CategoryHygiene, "Hygiene", []BiosecurityPractice{
			{PracticeCleaning, "Regular cleaning schedule"},
			{PracticeDisinfection, "Disinfection protocols"},
			{PracticeWaste, "Waste management"},
		}},
		{CategoryAccessControl, "Access Control", []BiosecurityPractice{
			{PracticeVisitors, "Visitor management"},
			{PracticeEquipment, "Equipment disinfection"},
			{PracticeVehicles, "Vehicle control"},
		}},
		{CategoryQuarantine, "Quarantine", []BiosecurityPractice{
			{PracticeNewAnimals, "New animal isolation"},
			{PracticeSickAnimals, "Sick animal isolation"},
			{PracticeReturningAnimals, "Returning animal protocols"},
		}},
		{CategoryPestControl, "Pest Control", []BiosecurityPractice{
			{PracticeRodents, "Rodent control"},
			{PracticeWildBirds, "Wild bird control"},
			{PracticeInsects, "Insect control"},
		}},
		{CategoryFeedWater, "Feed & Water", []BiosecurityPractice{
			{PracticeFeedQuality, "Feed quality control"},
			{PracticeWaterQuality, "Water quality control"},
			{PracticeStorage, "Proper storage"},
		}},
	}
}

// BiosecurityQuestionSet holds all fifteen practices; each scores 0 to 20.
var BiosecurityQuestionSet = newBiosecurityQuestionSet()

func newBiosecurityQuestionSet() QuestionSet[BiosecurityQuestion] {
	set := QuestionSet[BiosecurityQuestion]{Min: 0, Max: BiosecurityMaxPerQuestion}
	for _, c := range BiosecurityCategories() {
		for _, p := range c.Practices {
			set.Questions = append(set.Questions, p.ID)
		}
	}
	return set
}

// Tier is the four-level rating used for categories and individual practices.
type Tier string

const (
	TierExcellent Tier = "Excellent"
	TierGood      Tier = "Good"
	TierFair      Tier = "Fair"
	TierPoor      Tier = "Poor"
)

// ClassifyTier rates a rounded percentage: >=80 Excellent, >=60 Good, >=40 Fair.
func ClassifyTier(percentage int) Tier {
	switch {
	case percentage >= 80:
		return TierExcellent
	case percentage >= 60:
		return TierGood
	case percentage >= 40:
		return TierFair
	default:
		return TierPoor
	}
}

// PracticeRating is the feedback shown under a single slider.
type PracticeRating struct {
	Tier    Tier
	Message string
}

// RatePractice rates one slider value: >=15 Excellent, >=10 Good, >=5 Fair.
func RatePractice(score int) PracticeRating {
	switch {
	case score >= 15:
		return PracticeRating{TierExcellent, "This measure is well implemented and maintained."}
	case score >= 10:
		return PracticeRating{TierGood, "This measure is implemented but could be improved."}
	case score >= 5:
		return PracticeRating{TierFair, "This measure needs attention and improvement."}
	default:
		return PracticeRating{TierPoor, "This measure requires immediate attention and implementation."}
	}
}

// Band is the coarse overall label shown on the dashboard, on its own scale
// distinct from Tier.
type Band string

const (
	BandGood     Band = "Good"
	BandModerate Band = "Moderate"
	BandHighRisk Band = "High Risk"
)

// ClassifyBand maps the overall percentage: >=80 Good, >=50 Moderate, else High Risk.
func ClassifyBand(percentage int) Band {
	switch {
	case percentage >= 80:
		return BandGood
	case percentage >= 50:
		return BandModerate
	default:
		return BandHighRisk
	}
}

// CategoryResult is the score of one category.
type CategoryResult struct {
	Category   BiosecurityCategory
	Label      string
	Score      int
	MaxScore   int
	Percentage int
	Tier       Tier
}

// BiosecurityResult is the outcome of the biosecurity checklist.
type BiosecurityResult struct {
	Answers    map[BiosecurityQuestion]int
	Categories []CategoryResult
	Score      int
	MaxScore   int
	Percentage int
	Tier       Tier
	Band       Band
}

// ScoreBiosecurity scores each category and the checklist as a whole.
func ScoreBiosecurity(answers map[BiosecurityQuestion]int) BiosecurityResult {
	result := BiosecurityResult{Answers: answers}

	for _, c := range BiosecurityCategories() {
		set := QuestionSet[BiosecurityQuestion]{Max: BiosecurityMaxPerQuestion}
		for _, p := range c.Practices {
			set.Questions = append(set.Questions, p.ID)
		}
		score, maxScore := set.Sum(answers), set.MaxScore()
		pct := Round(Percentage(score, maxScore))

		result.Categories = append(result.Categories, CategoryResult{
			Category:   c.ID,
			Label:      c.Label,
			Score:      score,
			MaxScore:   maxScore,
			Percentage: pct,
			Tier:       ClassifyTier(pct),
		})
		result.Score += score
		result.MaxScore += maxScore
	}

	result.Percentage = Round(Percentage(result.Score, result.MaxScore))
	result.Tier = ClassifyTier(result.Percentage)
	result.Band = ClassifyBand(result.Percentage)
	return result
}
