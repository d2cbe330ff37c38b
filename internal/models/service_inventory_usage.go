package models

// ServiceInventoryUsage maps a service to the quantity of an inventory item
// it consumes per appointment.
type ServiceInventoryUsage struct {
	ServiceID uint `gorm:"primaryKey" json:"service_id"`
	ItemID    uint `gorm:"primaryKey" json:"item_id"`

	Item InventoryItem `gorm:"foreignKey:ItemID" json:"item"`

	QuantityUsed int `gorm:"not null" json:"quantity_used"`
}
