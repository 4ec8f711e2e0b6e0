package makeapi

// Scenario — сценарий Make.com.
type Scenario struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	TeamID      int    `json:"teamId"`
	FolderID    int    `json:"folderId,omitempty"`
	IsActive    bool   `json:"isActive"`
	IsPaused    bool   `json:"isPaused,omitempty"`
	Description string `json:"description,omitempty"`
	HookID      int    `json:"hookId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// Hook — webhook Make.com.
type Hook struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TeamID     int    `json:"teamId"`
	TypeName   string `json:"typeName"`
	Type       string `json:"type,omitempty"`
	URL        string `json:"url,omitempty"`
	ScenarioID int    `json:"scenarioId,omitempty"`
	Enabled    bool   `json:"enabled,omitempty"`
	Gone       bool   `json:"gone,omitempty"`
}

// RunResult — результат ручного запуска сценария.
type RunResult struct {
	ExecutionID string `json:"executionId"`
	StatusURL   string `json:"statusUrl,omitempty"`
}

// User — владелец API-токена (/users/me).
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Timezone string `json:"timezoneId,omitempty"`
	Locale   string `json:"localeId,omitempty"`
}

// Organization — организация Make.com.
type Organization struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone,omitempty"`
	Timezone string `json:"timezoneId,omitempty"`
}

// Team — команда внутри организации.
type Team struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	OrganizationID int    `json:"organizationId"`
}

// UserTeamRole — роль пользователя в команде.
type UserTeamRole struct {
	UserID     int  `json:"usersId"`
	TeamID     int  `json:"teamId"`
	RoleID     int  `json:"usersRoleId"`
	Changeable bool `json:"changeable"`
}
