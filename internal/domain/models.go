// Package domain holds the GORM entities shared by the user, invite, project
// and skill packages.
package domain

import (
	"collab_hub_backend/internal/common"

	"github.com/google/uuid"
)

// DefaultSkillLevel is stored when a skill is submitted without a level.
const DefaultSkillLevel = "Beginner"

// Invite statuses. Transitions between them are not constrained.
const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

// User is a platform member. FirebaseUID is the lookup key used by the API.
type User struct {
	common.BaseModel
	FirebaseUID      string   `gorm:"column:firebase_uid;type:varchar(128);uniqueIndex;not null" json:"firebaseUid"`
	Name             string   `gorm:"type:varchar(255);not null" json:"name"`
	Email            string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Bio              *string  `gorm:"type:text" json:"bio"`
	GithubURL        *string  `gorm:"column:github_url;type:text" json:"githubUrl"`
	PortfolioURL     *string  `gorm:"column:portfolio_url;type:text" json:"portfolioUrl"`
	Availability     *string  `gorm:"type:varchar(100)" json:"availability"`
	AcademicYear     *string  `gorm:"type:varchar(50)" json:"academicYear"`
	Branch           *string  `gorm:"type:varchar(100)" json:"branch"`
	Interests        *string  `gorm:"type:text" json:"interests"`
	FeaturedProjects []string `gorm:"type:text;serializer:json" json:"featuredProjects"`
	DiscordOrContact *string  `gorm:"type:varchar(255)" json:"discordOrContact"`

	Skills               []UserSkill `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"skills"`
	Projects             []Project   `gorm:"foreignKey:CreatorID" json:"projects"`
	CollaboratedProjects []Project   `gorm:"many2many:project_collaborators;joinForeignKey:UserID;joinReferences:ProjectID" json:"collaboratedProjects,omitempty"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Skill is an entry of the shared skill vocabulary. Names match exactly.
type Skill struct {
	common.BaseModel
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (Skill) TableName() string {
	return "skills"
}

// UserSkill links a user to a skill with a proficiency level.
type UserSkill struct {
	common.BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill" json:"userId"`
	SkillID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_skill" json:"skillId"`
	Level   string    `gorm:"type:varchar(50);not null;default:'Beginner'" json:"level"`
	Skill   *Skill    `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

func (UserSkill) TableName() string {
	return "user_skills"
}

// Project is owned by its creator; other members join as collaborators.
type Project struct {
	common.BaseModel
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string    `gorm:"type:varchar(300);uniqueIndex;not null" json:"slug"`
	Description   *string   `gorm:"type:text" json:"description"`
	TechStack     []string  `gorm:"type:text;serializer:json" json:"techStack"`
	CreatorID     uuid.UUID `gorm:"type:uuid;not null;index" json:"creatorId"`
	Creator       *User     `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Collaborators []User    `gorm:"many2many:project_collaborators;joinForeignKey:ProjectID;joinReferences:UserID" json:"collaborators,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectCollaborator is the join row of the collaborator set.
type ProjectCollaborator struct {
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (ProjectCollaborator) TableName() string {
	return "project_collaborators"
}

// Invite asks Receiver to join Project in Role.
type Invite struct {
	common.BaseModel
	SenderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"senderId"`
	ReceiverID uuid.UUID `gorm:"type:uuid;not null;index" json:"receiverId"`
	ProjectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"projectId"`
	Role       string    `gorm:"type:varchar(100)" json:"role"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Sender     *User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver   *User     `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Invite) TableName() string {
	return "invites"
}

// Models lists every entity in dependency order for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Skill{},
		&UserSkill{},
		&Project{},
		&ProjectCollaborator{},
		&Invite{},
	}
}
