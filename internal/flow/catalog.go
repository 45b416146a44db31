package flow

// Phase 问卷阶段，阶段之间全序
type Phase string

const (
	PhaseStart               Phase = "start"
	PhaseProfile             Phase = "profile" // Background 九步 + Emotional 五步
	PhaseCompleteApplication Phase = "complete_application"
	PhaseCompleted           Phase = "completed" // 终态，没有步骤
)

// Step 步骤路由标识，和前端页面一一对应
type Step string

const (
	StepBasics Step = "basics"

	StepBackgroundOne   Step = "background-series-one"
	StepBackgroundTwo   Step = "background-series-two"
	StepBackgroundThree Step = "background-series-three"
	StepBackgroundFour  Step = "background-series-four"
	StepBackgroundFive  Step = "background-series-five"
	StepBackgroundSix   Step = "background-series-six"
	StepBackgroundSeven Step = "background-series-seven"
	StepBackgroundEight Step = "background-series-eight"
	StepBackgroundNine  Step = "background-series-nine"

	StepEmotionalOne   Step = "emotional-series-one"
	StepEmotionalTwo   Step = "emotional-series-two"
	StepEmotionalThree Step = "emotional-series-three"
	StepEmotionalFour  Step = "emotional-series-four"
	StepEmotionalFive  Step = "emotional-series-five"

	StepCompleteApplication Step = "complete-application"
)

// StepDefinition 静态步骤定义，运行期不变
type StepDefinition struct {
	Route Step
	Phase Phase
	Label string
}

// Catalog 全量步骤表，顺序即全局步骤顺序
var Catalog = []StepDefinition{
	{Route: StepBasics, Phase: PhaseStart, Label: "Basics"},

	{Route: StepBackgroundOne, Phase: PhaseProfile, Label: "Gender"},
	{Route: StepBackgroundTwo, Phase: PhaseProfile, Label: "Interested In"},
	{Route: StepBackgroundThree, Phase: PhaseProfile, Label: "Location"},
	{Route: StepBackgroundFour, Phase: PhaseProfile, Label: "Ethnicity & Religion"},
	{Route: StepBackgroundFive, Phase: PhaseProfile, Label: "Education & Occupation"},
	{Route: StepBackgroundSix, Phase: PhaseProfile, Label: "Height & Marital History"},
	{Route: StepBackgroundSeven, Phase: PhaseProfile, Label: "Children"},
	{Route: StepBackgroundEight, Phase: PhaseProfile, Label: "Lifestyle"},
	{Route: StepBackgroundNine, Phase: PhaseProfile, Label: "Partner Age Range"},

	{Route: StepEmotionalOne, Phase: PhaseProfile, Label: "Love Languages"},
	{Route: StepEmotionalTwo, Phase: PhaseProfile, Label: "Core Values"},
	{Route: StepEmotionalThree, Phase: PhaseProfile, Label: "Conflict Style"},
	{Route: StepEmotionalFour, Phase: PhaseProfile, Label: "Ideal Partner"},
	{Route: StepEmotionalFive, Phase: PhaseProfile, Label: "Dealbreakers"},

	{Route: StepCompleteApplication, Phase: PhaseCompleteApplication, Label: "Complete Application"},
}

// phaseOrder 阶段全序
var phaseOrder = []Phase{PhaseStart, PhaseProfile, PhaseCompleteApplication, PhaseCompleted}

// phaseBoundaries 每个阶段在总进度上的累计边界
// 配置值而非计算值，刻意向 Profile 倾斜来贴近真实填写成本
var phaseBoundaries = map[Phase]float64{
	PhaseStart:               10,
	PhaseProfile:             85,
	PhaseCompleteApplication: 95,
	PhaseCompleted:           100,
}

// 路由到全局序号的索引，init 时建好
var routeIndex = func() map[Step]int {
	idx := make(map[Step]int, len(Catalog))
	for i, def := range Catalog {
		idx[def.Route] = i
	}
	return idx
}()

// Lookup 按路由查步骤定义
func Lookup(route Step) (StepDefinition, bool) {
	i, ok := routeIndex[route]
	if !ok {
		return StepDefinition{}, false
	}
	return Catalog[i], true
}

// Index 步骤在全局序列中的序号，未知路由返回 -1
func Index(route Step) int {
	i, ok := routeIndex[route]
	if !ok {
		return -1
	}
	return i
}

// PhaseSteps 某阶段的全部步骤，保持目录顺序
func PhaseSteps(phase Phase) []StepDefinition {
	var steps []StepDefinition
	for _, def := range Catalog {
		if def.Phase == phase {
			steps = append(steps, def)
		}
	}
	return steps
}

// PhaseIndex 阶段序号，未知阶段返回 -1
func PhaseIndex(phase Phase) int {
	for i, p := range phaseOrder {
		if p == phase {
			return i
		}
	}
	return -1
}

// NextStep 目录里配置的下一步；最后一步之后没有下一步
func NextStep(route Step) (Step, bool) {
	i, ok := routeIndex[route]
	if !ok || i+1 >= len(Catalog) {
		return "", false
	}
	return Catalog[i+1].Route, true
}

// Prerequisites 目标步骤的完整前缀依赖，最早的在前
// 不只是紧邻的前一步，是全部更早步骤
func Prerequisites(route Step) []Step {
	i, ok := routeIndex[route]
	if !ok {
		return nil
	}
	prereqs := make([]Step, 0, i)
	for _, def := range Catalog[:i] {
		prereqs = append(prereqs, def.Route)
	}
	return prereqs
}

// Routes 全部步骤路由，目录顺序
func Routes() []Step {
	routes := make([]Step, len(Catalog))
	for i, def := range Catalog {
		routes[i] = def.Route
	}
	return routes
}

// FirstStep 目录首步
func FirstStep() Step {
	return Catalog[0].Route
}
