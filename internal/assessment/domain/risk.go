package domain

// RiskQuestion identifies one of the six risk checker questions.
type RiskQuestion string

const (
	RiskAnimalType    RiskQuestion = "animalType"
	RiskVisitors      RiskQuestion = "visitors"
	RiskEntryControls RiskQuestion = "entryControls"
	RiskFeedSource    RiskQuestion = "feedSource"
	RiskSickAnimals   RiskQuestion = "sickAnimals"
	RiskProximity     RiskQuestion = "proximity"
)

// RiskQuestionSet holds the risk checker questions; every option scores 1 to 4.
var RiskQuestionSet = QuestionSet[RiskQuestion]{
	Questions: []RiskQuestion{
		RiskAnimalType, RiskVisitors, RiskEntryControls, RiskFeedSource, RiskSickAnimals, RiskProximity,
	},
	Min: 1,
	Max: 4,
}

// RiskOption is a selectable answer and the score it contributes.
type RiskOption struct {
	Score int
	Label Text
}

// RiskQuestionDef is the prompt and options shown for a question.
type RiskQuestionDef struct {
	ID      RiskQuestion
	Prompt  Text
	Options []RiskOption
}

// RiskQuestionDefs returns the questions in the order they are asked.
func RiskQuestionDefs() []RiskQuestionDef {
	return []RiskQuestionDef{
		{
			ID: RiskAnimalType,
			Prompt: Text{
				EN: "What type of animals do you primarily raise?",
				HI: "Aap mukhya roop se kaun se jaanwar paaltē hain?",
			},
			Options: []RiskOption{
				{1, Text{"Poultry (Chickens/Ducks)", "Poultry (Murgi/Batakh)"}},
				{2, Text{"Pigs", "Suar"}},
				{3, Text{"Mixed (Poultry + Pigs)", "Mixed (Poultry + Suar)"}},
				{1, Text{"Other livestock", "Anya jaanwar"}},
			},
		},
		{
			ID: RiskVisitors,
			Prompt: Text{
				EN: "How many visitors come to your farm per week?",
				HI: "Hafte mein kitne visitors aapke farm par aate hain?",
			},
			Options: []RiskOption{
				{1, Text{"0-2 visitors", "0-2 visitors"}},
				{2, Text{"3-5 visitors", "3-5 visitors"}},
				{3, Text{"6-10 visitors", "6-10 visitors"}},
				{4, Text{"More than 10", "10 se jyada"}},
			},
		},
		{
			ID: RiskEntryControls,
			Prompt: Text{
				EN: "Do you have entry controls for visitors?",
				HI: "Kya aapke paas visitors ke liye entry controls hain?",
			},
			Options: []RiskOption{
				{1, Text{"Yes, strict controls", "Haan, sakht controls"}},
				{2, Text{"Some basic measures", "Kuch basic measures"}},
				{3, Text{"Minimal controls", "Minimal controls"}},
				{4, Text{"No specific controls", "Koi specific controls nahi"}},
			},
		},
		{
			ID: RiskFeedSource,
			Prompt: Text{
				EN: "Where do you primarily source your animal feed?",
				HI: "Aap apna animal feed mukhya roop se kahan se laate hain?",
			},
			Options: []RiskOption{
				{1, Text{"Certified suppliers only", "Sirf certified suppliers se"}},
				{2, Text{"Mix of certified and local", "Certified aur local ka mix"}},
				{3, Text{"Mostly local sources", "Jyada tar local sources"}},
				{4, Text{"Various unknown sources", "Various unknown sources"}},
			},
		},
		{
			ID: RiskSickAnimals,
			Prompt: Text{
				EN: "Have you had sick animals in the past 3 months?",
				HI: "Kya pichle 3 mahine mein aapke paas bimar jaanwar the?",
			},
			Options: []RiskOption{
				{1, Text{"No sick animals", "Koi bimar jaanwar nahi"}},
				{2, Text{"Isolated cases, treated", "Isolated cases, treat kiye"}},
				{3, Text{"Multiple cases", "Multiple cases"}},
				{4, Text{"Ongoing health issues", "Ongoing health issues"}},
			},
		},
		{
			ID: RiskProximity,
			Prompt: Text{
				EN: "How far is your farm from the nearest livestock market?",
				HI: "Aapka farm sabse nazdeeki livestock market se kitni door hai?",
			},
			Options: []RiskOption{
				{1, Text{"More than 10 km", "10 km se jyada"}},
				{2, Text{"5-10 km", "5-10 km"}},
				{3, Text{"1-5 km", "1-5 km"}},
				{4, Text{"Less than 1 km", "1 km se kam"}},
			},
		},
	}
}

// Region is a state with a known regional disease pressure.
type Region string

const (
	RegionPunjab      Region = "Punjab"
	RegionGujarat     Region = "Gujarat"
	RegionHaryana     Region = "Haryana"
	RegionMaharashtra Region = "Maharashtra"
)

// ProductionSystem is the kind of operation the farm runs.
type ProductionSystem string

const (
	SystemPoultry ProductionSystem = "poultry"
	SystemPigs    ProductionSystem = "pigs"
	SystemMixed   ProductionSystem = "mixed"
)

// regionalModifiers is added to the raw risk score; values are 0 to 2.
var regionalModifiers = map[Region]map[ProductionSystem]int{
	RegionPunjab:      {SystemPoultry: 2, SystemPigs: 1, SystemMixed: 2},
	RegionGujarat:     {SystemPoultry: 1, SystemPigs: 2, SystemMixed: 2},
	RegionHaryana:     {SystemPoultry: 2, SystemPigs: 1, SystemMixed: 2},
	RegionMaharashtra: {SystemPoultry: 1, SystemPigs: 1, SystemMixed: 1},
}

// Regions lists the regions with a modifier table entry.
func Regions() []Region {
	return []Region{RegionPunjab, RegionGujarat, RegionHaryana, RegionMaharashtra}
}

// RegionalModifier returns the additive modifier, or 0 for an unknown region or system.
func RegionalModifier(region Region, system ProductionSystem) int {
	return regionalModifiers[region][system]
}

// RiskLevel is the three-tier classification of the risk checker.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ClassifyRisk maps an unrounded percentage to a tier: <=35 low, <=65 medium, else high.
func ClassifyRisk(percentage float64) RiskLevel {
	switch {
	case percentage <= 35:
		return RiskLow
	case percentage <= 65:
		return RiskMedium
	default:
		return RiskHigh
	}
}

var riskRecommendations = map[RiskLevel][]Text{
	RiskLow: {
		{"Continue current practices", "Current practices continue karein"},
		{"Regular health monitoring", "Regular health monitoring"},
		{"Update vaccination schedule", "Vaccination schedule update karein"},
	},
	RiskMedium: {
		{"Improve visitor controls", "Visitor controls improve karein"},
		{"Review feed sources", "Feed sources review karein"},
		{"Implement quarantine protocols", "Quarantine protocols implement karein"},
		{"Consult with local vet", "Local vet se consult karein"},
	},
	RiskHigh: {
		{"Immediate action required", "Turant action zaroori"},
		{"Quarantine new animals", "Naye jaanwaron ko quarantine karein"},
		{"Limit all visitors", "Saare visitors ko limit karein"},
		{"Call veterinarian urgently", "Veterinarian ko turant call karein"},
		{"Review all biosecurity measures", "Saare biosecurity measures review karein"},
	},
}

// Recommendations returns a copy of the fixed recommendation list for a tier.
func Recommendations(level RiskLevel) []Text {
	recs := riskRecommendations[level]
	out := make([]Text, len(recs))
	copy(out, recs)
	return out
}

// RiskResult is the outcome of the risk checker.
type RiskResult struct {
	Answers         map[RiskQuestion]int
	RawScore        int
	Modifier        int
	Score           int
	MaxScore        int
	Percentage      float64
	Level           RiskLevel
	Recommendations []Text
}

// Rounded is the percentage shown to the farmer.
func (r RiskResult) Rounded() int {
	return Round(r.Percentage)
}

// ScoreRisk sums the answers, adds the regional modifier and classifies the result.
// The percentage is clamped at 100 because the modifier can push the score above
// the question maximum.
func ScoreRisk(answers map[RiskQuestion]int, region Region, system ProductionSystem) RiskResult {
	raw := RiskQuestionSet.Sum(answers)
	modifier := RegionalModifier(region, system)
	score := raw + modifier
	maxScore := RiskQuestionSet.MaxScore()
	pct := Percentage(score, maxScore)
	level := ClassifyRisk(pct)

	return RiskResult{
		Answers:         answers,
		RawScore:        raw,
		Modifier:        modifier,
		Score:           score,
		MaxScore:        maxScore,
		Percentage:      pct,
		Level:           level,
		Recommendations: Recommendations(level),
	}
}
