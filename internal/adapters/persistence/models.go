package persistence

import "time"

// RecipeModel represents the recipes table. Requirements are stored as a
// JSON array (see requirementRecord).
type RecipeModel struct {
	ID               string  `gorm:"column:id;primaryKey;not null"`
	Name             string  `gorm:"column:name;not null"`
	Description      string  `gorm:"column:description;type:text"`
	Category         string  `gorm:"column:category;not null;index"`
	RequirementsJSON string  `gorm:"column:requirements;type:text;not null"`
	ResultItemID     string  `gorm:"column:result_item_id;not null"`
	ResultName       string  `gorm:"column:result_name"`
	ResultQualityCap int     `gorm:"column:result_quality_cap;not null"`
	CraftingSeconds  float64 `gorm:"column:crafting_seconds;not null"`
	Unlocked         bool    `gorm:"column:unlocked;not null;default:false"`
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// OrderModel represents the crafting_orders table. The allocated materials
// are stored as a JSON array (see materialRecord).
type OrderModel struct {
	ID            string       `gorm:"column:id;primaryKey;not null"`
	RecipeID      string       `gorm:"column:recipe_id;not null;index"`
	Recipe        *RecipeModel `gorm:"foreignKey:RecipeID;references:ID"`
	MaterialsJSON string       `gorm:"column:materials;type:text;not null"`
	Status        string       `gorm:"column:status;not null;index"`
	Progress      float64      `gorm:"column:progress;not null;default:0"`
	CreatedAt     time.Time    `gorm:"column:created_at;not null"`
	StartedAt     *time.Time   `gorm:"column:started_at"`
	CompletedAt   *time.Time   `gorm:"column:completed_at"`
	FailureReason string       `gorm:"column:failure_reason"`
	FinalQuality  *int         `gorm:"column:final_quality"`
}

func (OrderModel) TableName() string {
	return "crafting_orders"
}

// requirementRecord is the JSON shape of one material requirement
type requirementRecord struct {
	Category           string `json:"category"`
	MinimumQuality     int    `json:"minimum_quality"`
	Quantity           int    `json:"quantity"`
	SpecificMaterialID string `json:"specific_material_id,omitempty"`
}

// materialRecord is the JSON shape of one allocated material instance
type materialRecord struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Quality  int    `json:"quality"`
}
