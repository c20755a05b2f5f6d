package localstore

import (
	"time"

	"teamtrack/internal/model"

	"github.com/google/uuid"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedDocument builds the demo data a fresh store starts with: one Leader,
// three Members, three projects in different states and a handful of tasks
// and chat messages to make every screen non-empty.
func seedDocument() Document {
	jeremiah := model.Member{
		ID:        uuid.New(),
		Name:      "Jeremiah Smith",
		Email:     "jeremiah.smith@weekly.com",
		Role:      model.RoleLeader,
		Title:     "Team Lead",
		AvatarURL: "https://i.pravatar.cc/100?img=8",
		CreatedAt: date(2025, time.October, 1),
	}
	alice := model.Member{
		ID:        uuid.New(),
		Name:      "Alice Johnson",
		Email:     "alice.johnson@weekly.com",
		Role:      model.RoleMember,
		Title:     "Team Member",
		AvatarURL: "https://i.pravatar.cc/100?img=12",
		CreatedAt: date(2025, time.October, 1),
	}
	bob := model.Member{
		ID:        uuid.New(),
		Name:      "Bob Williams",
		Email:     "bob.williams@weekly.com",
		Role:      model.RoleMember,
		Title:     "Team Member",
		AvatarURL: "https://i.pravatar.cc/100?img=15",
		CreatedAt: date(2025, time.October, 1),
	}
	charlie := model.Member{
		ID:        uuid.New(),
		Name:      "Charlie Brown",
		Email:     "charlie.brown@weekly.com",
		Role:      model.RoleMember,
		Title:     "Team Member",
		AvatarURL: "https://i.pravatar.cc/100?img=20",
		CreatedAt: date(2025, time.October, 1),
	}

	website := model.Project{
		ID:            uuid.New(),
		Name:          "Q4 Marketing Website",
		Status:        model.ProjectOngoing,
		StartDate:     date(2025, time.November, 5),
		EndDate:       date(2025, time.December, 15),
		CreatedBy:     jeremiah.ID,
		TeamMemberIDs: []uuid.UUID{jeremiah.ID, alice.ID, bob.ID},
		CreatedAt:     date(2025, time.November, 1),
	}
	mobile := model.Project{
		ID:            uuid.New(),
		Name:          "Mobile App Redesign",
		Status:        model.ProjectCompleted,
		StartDate:     date(2025, time.December, 5),
		EndDate:       date(2025, time.December, 20),
		CreatedBy:     jeremiah.ID,
		TeamMemberIDs: []uuid.UUID{jeremiah.ID, charlie.ID},
		CreatedAt:     date(2025, time.November, 20),
	}
	tooling := model.Project{
		ID:            uuid.New(),
		Name:          "Internal Tooling Update",
		Status:        model.ProjectOverdue,
		StartDate:     date(2025, time.October, 1),
		EndDate:       date(2025, time.November, 1),
		CreatedBy:     jeremiah.ID,
		TeamMemberIDs: []uuid.UUID{alice.ID, bob.ID, charlie.ID},
		CreatedAt:     date(2025, time.September, 25),
	}

	wireframes := date(2025, time.November, 5)
	homepage := date(2025, time.November, 10)
	cms := date(2025, time.December, 1)
	features := date(2025, time.December, 5)
	research := date(2025, time.December, 10)

	tasks := []model.Task{
		{
			ID: uuid.New(), ProjectID: &website.ID, Title: "Design wireframes",
			StartDate: &wireframes, DueDate: date(2025, time.November, 15),
			Status: model.TaskCompleted, Priority: model.PriorityHigh,
			AssigneeID: &alice.ID, CreatedBy: jeremiah.ID,
		},
		{
			ID: uuid.New(), ProjectID: &website.ID, Title: "Develop homepage component",
			StartDate: &homepage, DueDate: date(2025, time.December, 5),
			Status: model.TaskInProgress, Priority: model.PriorityMedium,
			AssigneeID: &jeremiah.ID, CreatedBy: jeremiah.ID,
		},
		{
			ID: uuid.New(), ProjectID: &website.ID, Title: "Set up CMS integration",
			StartDate: &cms, DueDate: date(2025, time.December, 15),
			Status: model.TaskPending, Priority: model.PriorityMedium,
			AssigneeID: &bob.ID, CreatedBy: jeremiah.ID,
		},
		{
			ID: uuid.New(), ProjectID: &mobile.ID, Title: "Define feature list",
			StartDate: &features, DueDate: date(2025, time.December, 15),
			Status: model.TaskPending, Priority: model.PriorityLow,
			AssigneeID: &charlie.ID, CreatedBy: jeremiah.ID,
		},
		{
			ID: uuid.New(), ProjectID: &mobile.ID, Title: "Research native frameworks",
			StartDate: &research, DueDate: date(2025, time.December, 20),
			Status: model.TaskPending, Priority: model.PriorityMedium,
			CreatedBy: jeremiah.ID,
		},
	}

	chat := []model.ChatMessage{
		{
			ID: uuid.New(), SenderID: alice.ID,
			Text:      "Good morning team! Has anyone started reviewing the wireframes for the Q4 website?",
			Timestamp: time.Date(2025, time.November, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), SenderID: jeremiah.ID,
			Text:      "Morning Alice! I just finished my review. Looks great, just a few minor comments on the footer spacing.",
			Timestamp: time.Date(2025, time.November, 10, 9, 5, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), SenderID: bob.ID,
			Text:      "I'll take a look this afternoon. Should we set up a quick 15-min sync to walk through all feedback?",
			Timestamp: time.Date(2025, time.November, 10, 9, 15, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), SenderID: jeremiah.ID,
			Text:      "Sounds good, Bob. I'll send out a calendar invite for 2 PM.",
			Timestamp: time.Date(2025, time.November, 10, 9, 16, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(), SenderID: charlie.ID,
			Text:      "Anyone working on the mobile app? I need clarification on the new login flow.",
			Timestamp: time.Date(2025, time.November, 10, 10, 30, 0, 0, time.UTC),
		},
	}

	doc := Document{
		Members:      []model.Member{jeremiah, alice, bob, charlie},
		Projects:     []model.Project{website, mobile, tooling},
		Tasks:        tasks,
		ChatMessages: chat,
	}
	derive(&doc)
	return doc
}
