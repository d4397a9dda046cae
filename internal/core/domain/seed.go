package domain

// SeedProducts returns the demo dataset inserted into an empty catalog.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "602d2149e773f2a3990b47f5",
			Name:        "IPhone X",
			Category:    "Smart Phone",
			Summary:     "This phone is the company's biggest change to its flagship smartphone in years.",
			Description: "It includes a borderless display, a glass back and a facial recognition unlock system.",
			ImageFile:   "product-1.png",
			Price:       950.00,
		},
		{
			ID:          "602d2149e773f2a3990b47f6",
			Name:        "Samsung 10",
			Category:    "Smart Phone",
			Summary:     "Flagship phone with an edge-to-edge display and a triple camera.",
			Description: "Ultrasonic fingerprint reader under the screen and wireless power sharing.",
			ImageFile:   "product-2.png",
			Price:       840.00,
		},
		{
			ID:          "602d2149e773f2a3990b47f7",
			Name:        "Huawei Plus",
			Category:    "White Appliances",
			Summary:     "Large screen phone with long battery life.",
			Description: "Dual camera setup and fast charging.",
			ImageFile:   "product-3.png",
			Price:       650.00,
		},
		{
			ID:          "602d2149e773f2a3990b47f8",
			Name:        "Xiaomi Mi 9",
			Category:    "White Appliances",
			Summary:     "Affordable flagship with a 48MP main camera.",
			Description: "Snapdragon 855 chipset and in-display fingerprint sensor.",
			ImageFile:   "product-4.png",
			Price:       470.00,
		},
		{
			ID:          "602d2149e773f2a3990b47f9",
			Name:        "HTC U11+ Plus",
			Category:    "Smart Phone",
			Summary:     "Squeezable frame and liquid surface design.",
			Description: "Edge Sense controls and a 6 inch display.",
			ImageFile:   "product-5.png",
			Price:       380.00,
		},
		{
			ID:          "602d2149e773f2a3990b47fa",
			Name:        "LG G7 ThinQ",
			Category:    "Home Kitchen",
			Summary:     "AI camera and a Boombox speaker.",
			Description: "Super bright display and military grade durability.",
			ImageFile:   "product-6.png",
			Price:       240.00,
		},
	}
}
