package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func channelTarget(id string) TargetInput {
	return TargetInput{ChannelTargetInfo: &ChannelTargetInfo{ContactChannelID: id, RetryIntervalInMinutes: intPtr(1)}}
}

func TestNewStage_DurationBounds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		duration int
		ok       bool
	}{
		{-1, false},
		{0, false},
		{1, true},
		{15, true},
		{30, true},
		{31, false},
	}
	for _, tt := range tests {
		_, err := NewStage(StageInput{DurationInMinutes: tt.duration})
		if tt.ok {
			assert.NoError(t, err, "duration %d", tt.duration)
		} else {
			assert.ErrorIs(t, err, ErrValidation, "duration %d", tt.duration)
		}
	}
}

func TestNewTarget_ExactlyOneShape(t *testing.T) {
	t.Parallel()
	both := TargetInput{
		ChannelTargetInfo: &ChannelTargetInfo{ContactChannelID: "ch"},
		ContactTargetInfo: &ContactTargetInfo{ContactID: "c"},
	}
	_, err := NewTarget(both)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewTarget(TargetInput{})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewTarget(TargetInput{ChannelTargetInfo: &ChannelTargetInfo{}})
	assert.ErrorIs(t, err, ErrValidation)

	target, err := NewTarget(channelTarget("ch"))
	require.NoError(t, err)
	assert.Equal(t, ChannelTarget{ContactChannelID: "ch", RetryIntervalInMinutes: 1}, target)

	target, err = NewTarget(TargetInput{ContactTargetInfo: &ContactTargetInfo{ContactID: "c", IsEssential: boolPtr(true)}})
	require.NoError(t, err)
	assert.Equal(t, ContactTarget{ContactID: "c", IsEssential: true}, target)
}

func TestNewTarget_Defaults(t *testing.T) {
	t.Parallel()
	target, err := NewTarget(TargetInput{ChannelTargetInfo: &ChannelTargetInfo{ContactChannelID: "ch"}})
	require.NoError(t, err)
	assert.Equal(t, 1, target.(ChannelTarget).RetryIntervalInMinutes)

	target, err = NewTarget(TargetInput{ContactTargetInfo: &ContactTargetInfo{ContactID: "c"}})
	require.NoError(t, err)
	assert.False(t, target.(ContactTarget).IsEssential)
}

func TestBuildPlan_KeepsOrder(t *testing.T) {
	t.Parallel()
	plan, err := BuildPlan(PlanInput{Stages: []StageInput{
		{DurationInMinutes: 5, Targets: []TargetInput{channelTarget("a")}},
		{DurationInMinutes: 10, Targets: []TargetInput{channelTarget("b")}},
		{DurationInMinutes: 15, Targets: []TargetInput{channelTarget("c")}},
	}})
	require.NoError(t, err)
	require.Len(t, plan, 3)
	for i, id := range []string{"a", "b", "c"} {
		assert.Equal(t, id, plan[i].Targets[0].(ChannelTarget).ContactChannelID)
	}
	assert.Equal(t, 10, plan[1].DurationInMinutes)
}

func TestBuildPlan_EmptyAndFailFast(t *testing.T) {
	t.Parallel()
	plan, err := BuildPlan(PlanInput{})
	require.NoError(t, err)
	assert.Empty(t, plan)

	plan, err = BuildPlan(PlanInput{Stages: []StageInput{
		{DurationInMinutes: 5},
		{DurationInMinutes: 0},
	}})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, plan)
}

func TestContactSetPlan_KeepsPlanOnError(t *testing.T) {
	t.Parallel()
	c, err := NewContact(CreateContactInput{
		Alias: "tuser",
		Type:  ContactTypePersonal,
		Plan:  PlanInput{Stages: []StageInput{{DurationInMinutes: 5, Targets: []TargetInput{channelTarget("ch-1")}}}},
	}, "us-east-1", "123456789012")
	require.NoError(t, err)

	err = c.SetPlan(PlanInput{Stages: []StageInput{
		{DurationInMinutes: 10, Targets: []TargetInput{channelTarget("ch-2")}},
		{DurationInMinutes: 31},
	}})
	require.ErrorIs(t, err, ErrValidation)
	require.Len(t, c.Plan, 1)
	assert.Equal(t, 5, c.Plan[0].DurationInMinutes)
	assert.Equal(t, "ch-1", c.Plan[0].Targets[0].(ChannelTarget).ContactChannelID)

	require.NoError(t, c.SetPlan(PlanInput{}))
	assert.Empty(t, c.Plan)
}

func TestDescribePlan_RendersBothShapes(t *testing.T) {
	t.Parallel()
	plan, err := BuildPlan(PlanInput{Stages: []StageInput{{
		DurationInMinutes: 15,
		Targets: []TargetInput{
			{ChannelTargetInfo: &ChannelTargetInfo{ContactChannelID: "ch"}},
			{ContactTargetInfo: &ContactTargetInfo{ContactID: "c", IsEssential: boolPtr(true)}},
		},
	}}})
	require.NoError(t, err)

	desc := describePlan(plan)
	require.Len(t, desc.Stages, 1)
	targets := desc.Stages[0].Targets
	require.Len(t, targets, 2)
	require.NotNil(t, targets[0].ChannelTargetInfo)
	assert.Nil(t, targets[0].ContactTargetInfo)
	assert.Equal(t, 1, *targets[0].ChannelTargetInfo.RetryIntervalInMinutes)
	require.NotNil(t, targets[1].ContactTargetInfo)
	assert.True(t, *targets[1].ContactTargetInfo.IsEssential)
}
