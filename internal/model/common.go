package model

// ActionType 比赛动作类型。集合是开放的：未知类型照常入库，只是不计入统计
type ActionType string

const (
	ActionSave     ActionType = "save"      // 门将扑救
	ActionGoal     ActionType = "goal"      // 失球（对方进球）
	ActionMiss     ActionType = "miss"      // 对方射偏
	ActionTeamGoal ActionType = "team_goal" // 本队进球
)

// KnownActionTypes 统计接口会逐一计数的动作类型
var KnownActionTypes = []ActionType{ActionSave, ActionGoal, ActionMiss, ActionTeamGoal}

// IsKnown 是否为统计中计数的动作类型
func (a ActionType) IsKnown() bool {
	for _, k := range KnownActionTypes {
		if a == k {
			return true
		}
	}
	return false
}

func (a ActionType) String() string { return string(a) }
