package policy_test

import (
	"testing"

	"teamtrack/internal/model"
	"teamtrack/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize_LeaderAllowedEverything(t *testing.T) {
	leader := model.Viewer{ID: uuid.New(), Role: model.RoleLeader}

	actions := []policy.Action{
		policy.ActionCreateProject,
		policy.ActionUpdateProject,
		policy.ActionDeleteProject,
		policy.ActionManageTeam,
		policy.ActionCreateTask,
		policy.ActionUpdateTask,
		policy.ActionDeleteTask,
		policy.ActionReassignTask,
	}
	for _, action := range actions {
		assert.NoError(t, policy.Authorize(leader, action, nil), string(action))
	}
}

func TestAuthorize_MemberProjectMutationsDenied(t *testing.T) {
	member := model.Viewer{ID: uuid.New(), Role: model.RoleMember}

	for _, action := range []policy.Action{
		policy.ActionCreateProject,
		policy.ActionUpdateProject,
		policy.ActionDeleteProject,
		policy.ActionManageTeam,
		policy.ActionReassignTask,
	} {
		err := policy.Authorize(member, action, nil)
		assert.ErrorIs(t, err, policy.ErrForbidden, string(action))

		var denied *policy.DeniedError
		assert.ErrorAs(t, err, &denied)
		assert.Equal(t, action, denied.Action)
		assert.NotEmpty(t, denied.Reason)
	}
}

func TestAuthorize_MemberOwnTask(t *testing.T) {
	memberID := uuid.New()
	member := model.Viewer{ID: memberID, Role: model.RoleMember}

	own := &model.Task{AssigneeID: &memberID}
	otherID := uuid.New()
	foreign := &model.Task{AssigneeID: &otherID}

	assert.NoError(t, policy.Authorize(member, policy.ActionUpdateTask, own))
	assert.NoError(t, policy.Authorize(member, policy.ActionDeleteTask, own))
	assert.ErrorIs(t, policy.Authorize(member, policy.ActionUpdateTask, foreign), policy.ErrForbidden)
	assert.ErrorIs(t, policy.Authorize(member, policy.ActionDeleteTask, foreign), policy.ErrForbidden)
	assert.NoError(t, policy.Authorize(member, policy.ActionCreateTask, nil))
}

func TestAuthorize_UnresolvedViewerDenied(t *testing.T) {
	nobody := model.Viewer{ID: uuid.Nil, Role: model.RoleMember}
	assert.ErrorIs(t, policy.Authorize(nobody, policy.ActionCreateTask, nil), policy.ErrForbidden)
}

func TestResolveAssignee(t *testing.T) {
	memberID := uuid.New()
	otherID := uuid.New()
	member := model.Viewer{ID: memberID, Role: model.RoleMember}
	leader := model.Viewer{ID: uuid.New(), Role: model.RoleLeader}

	// Leader: requested assignee kept, including unassigned.
	got, overridden := policy.ResolveAssignee(leader, &otherID)
	assert.Equal(t, &otherID, got)
	assert.False(t, overridden)
	got, overridden = policy.ResolveAssignee(leader, nil)
	assert.Nil(t, got)
	assert.False(t, overridden)

	// Member asking for self (explicitly or by omission): no override.
	got, overridden = policy.ResolveAssignee(member, &memberID)
	assert.Equal(t, memberID, *got)
	assert.False(t, overridden)
	got, overridden = policy.ResolveAssignee(member, nil)
	assert.Equal(t, memberID, *got)
	assert.False(t, overridden)

	// Member asking for someone else: forced back to self, flagged.
	got, overridden = policy.ResolveAssignee(member, &otherID)
	assert.Equal(t, memberID, *got)
	assert.True(t, overridden)
}
