package content

// Default returns the business's built-in site copy.
func Default() *Site {
	brand := Brand{
		Name:        "Paramount Mobile Detail",
		Tagline:     "Professional mobile detailing — clean, protected, and turning heads.",
		Subtag:      "We come to you. Fast booking. Transparent pricing.",
		ServiceArea: "Tempe • Scottsdale • Phoenix • Mesa",
	}

	return &Site{
		Brand: brand,
		Contact: Contact{
			PhoneDisplay: "(480) 479-6100",
			PhoneHref:    "+14804796100",
			Email:        "paramountmobiledetail@gmail.com",
			Hours:        "Mon–Sun • 8am–6pm",
			Instagram:    "https://instagram.com/yourhandle",
		},
		Nav: []NavItem{
			{Label: "Pricing", SectionID: "pricing"},
			{Label: "Results", SectionID: "results"},
			{Label: "Booking", SectionID: "booking"},
			{Label: "FAQ", SectionID: "faq"},
		},
		HeroStats: []HeroStat{
			{Icon: "clock", Title: "Fast booking", Desc: "Pick a time in minutes"},
			{Icon: "map-pin", Title: "We come to you", Desc: brand.ServiceArea},
			{Icon: "shield", Title: "Pro‑grade", Desc: "Safe tools & chemicals"},
		},
		Packages: []ServicePackage{
			{
				Name:  "Basic",
				From:  59,
				Badge: "Great for maintenance",
				Icon:  "sparkles",
				Features: []string{
					"Foam Wash & Wax",
					"Wheels & Tire Shine",
					"Interior Vacuum",
					"Wipe Down Console, Dash & Door Panels",
				},
			},
			{
				Name:      "Standard",
				From:      129,
				Badge:     "Most popular",
				Icon:      "shield",
				Highlight: true,
				Features: []string{
					"Hand Wash & Wax",
					"Wheels & Tire Shine",
					"Interior Vacuum",
					"Wipe Down Console, Dash & Door Panels",
					"Shampoo Floor Mats",
					"Interior Wipe & Dust",
				},
			},
			{
				Name:  "Full Detail",
				From:  199,
				Badge: "Deep clean + decon",
				Icon:  "car",
				Features: []string{
					"Full Interior Shampoo (Seats, Carpet, Floor Mats, Door Panels)",
					"Steam Clean & Deep Interior Clean",
					"Full Exterior Clay Bar Treatment",
				},
			},
		},
		Gallery: []GalleryTile{
			{Title: "Gloss + protection", Subtitle: "Washed and sealed.", Wide: true,
				ImageURL: "https://images.unsplash.com/photo-1525609004556-c46c7d6cf023?auto=format&fit=crop&w=1600&q=80"},
			{Title: "Interior reset", Subtitle: "Deep interior clean.",
				ImageURL: "https://images.unsplash.com/photo-1515923152115-758a6b16f0d4?auto=format&fit=crop&w=1200&q=80"},
			{Title: "Wheels & tires", Subtitle: "Cleaned and dressed.",
				ImageURL: "https://images.unsplash.com/photo-1489824904134-891ab64532f1?auto=format&fit=crop&w=1200&q=80"},
			{Title: "Full detail", Subtitle: "Shampoo + steam.", Wide: true,
				ImageURL: "https://images.unsplash.com/photo-1503376780353-7e6692767b70?auto=format&fit=crop&w=1600&q=80"},
		},
		Reviews: []Review{
			{Name: "Alex", Text: "Booked in 2 minutes. Looked brand new.", Meta: "5‑star service"},
			{Name: "Maya", Text: "Interior is spotless. Super professional.", Meta: "On‑site detail"},
			{Name: "Jordan", Text: "Standard package is perfect every time.", Meta: "Repeat customer"},
		},
		FAQ: []FAQEntry{
			{Question: "Do you need water or power?", Answer: "If you have access, great — otherwise we can be fully mobile for many services."},
			{Question: "What does the + mean in prices?", Answer: "Prices start at the listed amount. Larger or dirtier vehicles may cost more."},
			{Question: "How do I know my booking is confirmed?", Answer: "If you use the calendar, it’s instant. If you request, we confirm by text."},
		},
	}
}
