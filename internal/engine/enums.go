package engine

// String backed enums, kept readable in journals and catalog files.

type ActivityKind string
type StepKind string
type SpendAction string
type NoticeLevel string
type EventKind string
type RewardMode string

const (
	ActivityNone      ActivityKind = "none"
	ActivityChallenge ActivityKind = "challenge"
	ActivityQuest     ActivityKind = "quest"
)

var AllActivityKinds = []ActivityKind{ActivityNone, ActivityChallenge, ActivityQuest}

const (
	StepInstruction StepKind = "instruction"
	StepCard        StepKind = "card"
	StepAnswer      StepKind = "answer"
)

var AllStepKinds = []StepKind{StepInstruction, StepCard, StepAnswer}

const (
	SpendHint         SpendAction = "hint"
	SpendRemoveImpact SpendAction = "removeImpact"
	SpendResetTimer   SpendAction = "resetTimer"
)

var AllSpendActions = []SpendAction{SpendHint, SpendRemoveImpact, SpendResetTimer}

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeReward  NoticeLevel = "reward"
	NoticePenalty NoticeLevel = "penalty"
)

var AllNoticeLevels = []NoticeLevel{NoticeInfo, NoticeSuccess, NoticeReward, NoticePenalty}

const (
	EventSelectCell     EventKind = "select_cell"
	EventSpin           EventKind = "spin"
	EventChooseAnswer   EventKind = "choose_answer"
	EventSubmitAnswer   EventKind = "submit_answer"
	EventAdvance        EventKind = "advance"
	EventToggleRole     EventKind = "toggle_role"
	EventCheckRoles     EventKind = "check_roles"
	EventSpend          EventKind = "spend"
	EventTick           EventKind = "tick"
	EventSelectScenario EventKind = "select_scenario"
	// written once when a journal run opens; never dispatched
	EventStart          EventKind = "start"
)

var AllEventKinds = []EventKind{EventSelectCell, EventSpin, EventChooseAnswer, EventSubmitAnswer, EventAdvance, EventToggleRole, EventCheckRoles, EventSpend, EventTick, EventSelectScenario}

const (
	RewardChance RewardMode = "chance"
	RewardStreak RewardMode = "streak"
)

var AllRewardModes = []RewardMode{RewardChance, RewardStreak}

// Generic helpers
func contains[T ~string](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func (k ActivityKind) Validate() bool { return contains(AllActivityKinds, k) }
func (k StepKind) Validate() bool     { return contains(AllStepKinds, k) }
func (a SpendAction) Validate() bool  { return contains(AllSpendActions, a) }
func (l NoticeLevel) Validate() bool  { return contains(AllNoticeLevels, l) }
func (k EventKind) Validate() bool    { return contains(AllEventKinds, k) }
func (m RewardMode) Validate() bool   { return contains(AllRewardModes, m) }

// List helpers
func ListSpendActions() []SpendAction { return append([]SpendAction{}, AllSpendActions...) }
func ListRewardModes() []RewardMode   { return append([]RewardMode{}, AllRewardModes...) }
