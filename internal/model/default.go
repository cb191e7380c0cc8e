package model

// DefaultPersonalDetails is the sample identity of the default template,
// images as placeholders.
func DefaultPersonalDetails() PersonalDetails {
	return PersonalDetails{
		Name:    "JOHN DOE",
		Photo:   PlaceholderPhoto,
		Degree:  "B.Tech - Computer Science and Engineering",
		Gender:  "Male",
		DOB:     "06/09/2005",
		Email:   "john.doe@example.edu",
		Contact: "+91-431-2501081",
		Logo:    PlaceholderLogo,
	}
}

// Default returns the sample resume every new session starts from. Both
// image fields hold placeholders.
func Default(ids IDGenerator) ResumeData {
	return ResumeData{
		PersonalDetails: DefaultPersonalDetails(),
		Education: []Education{
			{ID: ids.NewID(), Year: "2023-Present", Degree: "B.Tech- CSE", Institution: "NIT, Trichy", Grade: "9.2"},
			{ID: ids.NewID(), Year: "2023", Degree: "Class XII", Institution: "Delhi Public School, R. K. Puram", Grade: "97.2%"},
			{ID: ids.NewID(), Year: "2021", Degree: "Class X", Institution: "Delhi Public School, R. K. Puram", Grade: "98.8%"},
		},
		Internships: []Internship{
			{
				ID:          ids.NewID(),
				Title:       "Research Internship at Indian Institute of Technology Guwahati",
				Date:        "Jun 2025 - Present",
				Description: "Working as a research intern on the project Air to Water Generator. Simulated a model in Dymola to extract water from humid air to meet water requirements in coastal regions.",
			},
			{
				ID:          ids.NewID(),
				Title:       "Internship at AHODS Technologies Private Limited",
				Date:        "Jun 2025 - Aug 2025",
				Description: "Collaborated with IIT Delhi on a project to enhance onboard hydrogen production for vehicles. Conducted a literature review on electrolysis methods to propose cost-effective solutions.",
			},
		},
		Achievements: []Achievement{
			{ID: ids.NewID(), Description: "Secured <b>Rank 2</b> in Cyber Olympiad (IFCO) at the zonal level conducted by International Olympiad Foundation in 2022."},
			{ID: ids.NewID(), Description: "Achieved <b>Top 5%</b> in the national competitive programming contest CodeSprint 2023."},
			{ID: ids.NewID(), Description: "<b>IBPC Meritorious Student Award</b> in 2021 and 2023."},
		},
		Projects: []Project{
			{
				ID:          ids.NewID(),
				Name:        "RideNITT",
				Date:        "January 2025 - March 2025",
				Description: "Developed a ride-sharing platform for students using React.js, Tailwind CSS and an Express.js backend with PostgreSQL, featuring Google OAuth2 and Leaflet.js for routing.",
			},
			{
				ID:          ids.NewID(),
				Name:        "Weather App",
				Date:        "May 2025",
				Description: "Displays the weather of 3 cities on the home page and of any city searched for.\nShows temperature, feels-like temperature, humidity and wind speed.\nBuilt with HTML, CSS and JavaScript on top of WeatherAPI.com.",
			},
			{
				ID:          ids.NewID(),
				Name:        "Chatty",
				Date:        "June 2025",
				Description: "Built a real-time chat application with one-on-one messaging and online status using the MERN stack with Socket.io, JWT for security and Zustand for state management.",
			},
		},
		Skills: []Skill{
			{ID: ids.NewID(), Category: "Programming Languages", Skills: "C++, C, JavaScript, HTML, CSS"},
			{ID: ids.NewID(), Category: "Frameworks/Libraries", Skills: "React.js, Socket.io"},
			{ID: ids.NewID(), Category: "Tools", Skills: "Visual Studio Code, Git, GitHub, Node.js"},
			{ID: ids.NewID(), Category: "Other Softwares", Skills: "Figma, Photoshop"},
		},
		Positions: []Position{
			{
				ID:          ids.NewID(),
				Title:       "Associate, The Product Folks NITT",
				Date:        "May 2025-Present",
				Description: "Member of the Product Management Club of NIT Trichy. Takes part in upskilling sessions and works on case studies, projects and product decks.",
			},
			{
				ID:          ids.NewID(),
				Title:       "Manager, Marketing, Festember",
				Date:        "Mar 2024 - Present",
				Description: "Marketing Manager of Festember'24, the annual cultural festival of NIT Trichy. Established partnerships with various companies through effective communication and negotiation.",
			},
		},
		Activities: []Activity{
			{
				ID:          ids.NewID(),
				Title:       "Social Activities",
				Description: "Volunteer under the HumaNITTy programme visiting local old age homes and orphanages.\nConducted Breast Cancer Awareness as an A-Flight NCC Cadet at NIT Trichy.",
			},
			{
				ID:          ids.NewID(),
				Title:       "Cultural Activities",
				Description: "Secured 1st position in Pixel Pirates event of Pragyan in 2023.\nParticipated in the Republic Day Parade of NIT Trichy in 2024.\nDAN 1 - Black Belt Holder in Karate",
			},
			{ID: ids.NewID(), Title: "Sports Activities", Description: "Participated in 10K sportsfete marathon"},
		},
		Languages:             []Language{},
		WebLinks:              []WebLink{},
		Coursework:            []Coursework{},
		TechnicalAchievements: []TechnicalAchievement{},
	}
}
