package store

import "github.com/vyrodovalexey/stockroom/internal/model"

// SeedItems returns the inventory the service starts with.
// A fresh slice is returned on every call.
func SeedItems() []model.Item {
	return []model.Item{
		{ID: 1, Name: "Laptop", Status: "available", Quantity: model.IntOf(10),
			Category: "Electronics", Supplier: "Tech Corp", Weight: model.FloatOf(2.5)},
		{ID: 2, Name: "Desk Chair", Status: "reserved", Quantity: model.IntOf(5),
			Category: "Furniture", Supplier: "Office Supply Co.", Weight: model.FloatOf(15.0)},
		{ID: 3, Name: "Printer Paper", Status: "available", Quantity: model.IntOf(100),
			Category: "Office Supplies", Supplier: "Paper Goods Ltd.", Weight: model.FloatOf(1.0)},
		{ID: 4, Name: "Smartphone", Status: "out of stock", Quantity: model.IntOf(0),
			Category: "Electronics", Supplier: "Mobile World", Weight: model.FloatOf(0.3)},
		{ID: 5, Name: "Drill Machine", Status: "available", Quantity: model.IntOf(7),
			Category: "Tools", Supplier: "Hardware Inc.", Weight: model.FloatOf(3.2)},
		{ID: 6, Name: "Refrigerator", Status: "reserved", Quantity: model.IntOf(3),
			Category: "Appliances", Supplier: "Home Essentials", Weight: model.FloatOf(60.0)},
		{ID: 7, Name: "Cooking Oil", Status: "available", Quantity: model.IntOf(50),
			Category: "Groceries", Supplier: "Food Distributors", Weight: model.FloatOf(0.9)},
		{ID: 8, Name: "T-Shirts", Status: "available", Quantity: model.IntOf(80),
			Category: "Clothing", Supplier: "Fashion House", Weight: model.FloatOf(0.2)},
		{ID: 9, Name: "LED Bulb", Status: "available", Quantity: model.IntOf(30),
			Category: "Lighting", Supplier: "Bright Lights", Weight: model.FloatOf(0.15)},
		{ID: 10, Name: "Sofa Set", Status: "reserved", Quantity: model.IntOf(2),
			Category: "Furniture", Supplier: "Living Space", Weight: model.FloatOf(45.0)},
	}
}
