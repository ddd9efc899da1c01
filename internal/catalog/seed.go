package catalog

import "github.com/shopspring/decimal"

// DefaultProducts returns the TechStore demo catalog.
func DefaultProducts() []*Product {
	return []*Product{
		{
			ID: 1, Name: "iPhone 15 Pro", Category: CategorySmartphone,
			UnitPrice:   decimal.RequireFromString("7999.99"),
			Description: "O mais avançado iPhone com chip A17 Pro e câmera de 48MP",
			Icon:        "📱", ImageURL: "imagens/iphone15pro.jpg",
		},
		{
			ID: 2, Name: "MacBook Air M2", Category: CategoryLaptop,
			UnitPrice:   decimal.RequireFromString("9999.99"),
			Description: "Notebook ultra-fino com chip M2 e 16GB de RAM",
			Icon:        "💻", ImageURL: "imagens/Macbook Air M2.webp",
		},
		{
			ID: 3, Name: "AirPods Pro", Category: CategoryAccessory,
			UnitPrice:   decimal.RequireFromString("1899.99"),
			Description: "Fones com cancelamento ativo de ruído",
			Icon:        "🎧", ImageURL: "imagens/AirPods Pro.webp",
		},
		{
			ID: 4, Name: "iPad Pro 12.9", Category: CategoryTablet,
			UnitPrice:   decimal.RequireFromString("8499.99"),
			Description: "Tablet profissional com tela Liquid Retina XDR",
			Icon:        "📱", ImageURL: "imagens/IPad Pro 12.9.webp",
		},
		{
			ID: 5, Name: "Samsung Galaxy S24", Category: CategorySmartphone,
			UnitPrice:   decimal.RequireFromString("5999.99"),
			Description: "Smartphone Android com câmera de 200MP e IA integrada",
			Icon:        "📱", ImageURL: "imagens/Samsung Galaxy S24.webp",
		},
		{
			ID: 6, Name: "Dell XPS 13", Category: CategoryLaptop,
			UnitPrice:   decimal.RequireFromString("7499.99"),
			Description: "Ultrabook premium com tela InfinityEdge",
			Icon:        "💻", ImageURL: "imagens/Dell XPS 13.avif",
		},
		{
			ID: 7, Name: "Magic Mouse", Category: CategoryAccessory,
			UnitPrice:   decimal.RequireFromString("699.99"),
			Description: "Mouse sem fio com superfície Multi-Touch",
			Icon:        "🖱️", ImageURL: "imagens/Magic Mouse.jpg",
		},
		{
			ID: 8, Name: "iPad Air", Category: CategoryTablet,
			UnitPrice:   decimal.RequireFromString("4999.99"),
			Description: "iPad com chip M1 e suporte ao Apple Pencil",
			Icon:        "📱", ImageURL: "imagens/Ipad Air.jpeg",
		},
		{
			ID: 9, Name: "Google Pixel 8", Category: CategorySmartphone,
			UnitPrice:   decimal.RequireFromString("4799.99"),
			Description: "Smartphone Google com IA avançada e câmera excepcional",
			Icon:        "📱", ImageURL: "imagens/Google Pixel 8.jpg",
		},
		{
			ID: 10, Name: "Surface Pro 9", Category: CategoryTablet,
			UnitPrice:   decimal.RequireFromString("8999.99"),
			Description: "Tablet 2-em-1 da Microsoft com Windows 11",
			Icon:        "📱", ImageURL: "imagens/Surface Pro 9.jpeg",
		},
		{
			ID: 11, Name: "Mechanical Keyboard", Category: CategoryAccessory,
			UnitPrice:   decimal.RequireFromString("899.99"),
			Description: "Teclado mecânico RGB com switches Cherry MX",
			Icon:        "⌨️", ImageURL: "imagens/Mechanical Keyboard.jpeg",
		},
		{
			ID: 12, Name: "Asus ROG Laptop", Category: CategoryLaptop,
			UnitPrice:   decimal.RequireFromString("12999.99"),
			Description: "Notebook gamer com RTX 4070 e Ryzen 9",
			Icon:        "💻", ImageURL: "imagens/Asus ROG Laptop.png",
		},
	}
}
