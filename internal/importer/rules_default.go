package importer

import "regexp"

// DefaultRuleSet returns the built-in classification tables. These are data,
// not logic: operators extend them through a TOML rules file (see
// LoadRuleSet) without touching the matching algorithm.
func DefaultRuleSet() *RuleSet {
	return NewRuleSet(defaultCategoryRules, defaultBrandRules,
		CategoryMatch{Name: "Accessories", Slug: "accessories"},
		BrandMatch{Name: "Generic", Slug: "generic"},
	)
}

var defaultCategoryRules = []CategoryRule{
	{
		Name:        "Laptop RAM",
		Slug:        "laptop-ram",
		Description: "Memory modules for laptops",
		Keywords:    []string{"laptop", "ram"},
		Priority:    100,
		DDRTypes:    true,
	},
	{
		Name:        "Desktop RAM",
		Slug:        "desktop-ram",
		Description: "Memory modules for desktop computers",
		Keywords:    []string{"desktop", "ram"},
		Priority:    100,
		DDRTypes:    true,
	},
	{
		Name:        "Server RAM",
		Slug:        "server-ram",
		Description: "ECC and registered memory for servers",
		Keywords:    []string{"server", "ram"},
		Priority:    100,
		DDRTypes:    true,
	},
	{
		Name:        "Gaming Laptops",
		Slug:        "gaming-laptops",
		Description: "High performance gaming laptops",
		Keywords:    []string{"gaming", "laptop"},
		Priority:    90,
	},
	{
		Name:           "Flash Drives",
		Slug:           "flash-drives",
		Description:    "USB flash storage",
		ParentCategory: "Storage",
		Keywords:       []string{"flash", "drive"},
		Priority:       80,
	},
	{
		Name:           "SSD Drives",
		Slug:           "ssd-drives",
		Description:    "Solid state drives",
		ParentCategory: "Storage",
		Keywords:       []string{"ssd"},
		Priority:       75,
	},
	{
		Name:           "Hard Drives",
		Slug:           "hard-drives",
		Description:    "Mechanical hard disk drives",
		ParentCategory: "Storage",
		Keywords:       []string{"hard", "drive"},
		Priority:       70,
	},
	{
		Name:           "Keyboards",
		Slug:           "keyboards",
		Description:    "Wired and wireless keyboards",
		ParentCategory: "Peripherals",
		Keywords:       []string{"keyboard"},
		Priority:       60,
	},
	{
		Name:           "Mice",
		Slug:           "mice",
		Description:    "Wired and wireless mice",
		ParentCategory: "Peripherals",
		Keywords:       []string{"mouse"},
		Priority:       60,
	},
	{
		Name:        "Monitors",
		Slug:        "monitors",
		Description: "Computer monitors and displays",
		Keywords:    []string{"monitor"},
		Priority:    60,
	},
	{
		Name:        "Printers",
		Slug:        "printers",
		Description: "Printers and all-in-one devices",
		Keywords:    []string{"printer"},
		Priority:    60,
	},
	{
		Name:        "Networking",
		Slug:        "networking",
		Description: "Routers, switches and access points",
		Keywords:    []string{"router"},
		Priority:    60,
	},
	{
		Name:        "RAM",
		Slug:        "ram",
		Description: "Memory modules",
		Keywords:    []string{"ram"},
		Priority:    50,
	},
	{
		Name:        "Laptops",
		Slug:        "laptops",
		Description: "Laptop computers",
		Keywords:    []string{"laptop"},
		Priority:    40,
	},
	{
		Name:        "Desktops",
		Slug:        "desktops",
		Description: "Desktop computers",
		Keywords:    []string{"desktop"},
		Priority:    40,
	},
}

var defaultBrandRules = []BrandRule{
	{Name: "HP", Slug: "hp", Patterns: compile(`(?i)\bhp\b`, `(?i)hewlett[- ]packard`, `(?i)\belitebook\b`, `(?i)\bprobook\b`)},
	{Name: "Dell", Slug: "dell", Patterns: compile(`(?i)\bdell\b`, `(?i)\blatitude\b`, `(?i)\binspiron\b`)},
	{Name: "Lenovo", Slug: "lenovo", Patterns: compile(`(?i)\blenovo\b`, `(?i)\bthinkpad\b`, `(?i)\bideapad\b`)},
	{Name: "Apple", Slug: "apple", Patterns: compile(`(?i)\bapple\b`, `(?i)\bmacbook\b`, `(?i)\bimac\b`)},
	{Name: "Asus", Slug: "asus", Patterns: compile(`(?i)\basus\b`, `(?i)\bvivobook\b`, `(?i)\bzenbook\b`)},
	{Name: "Acer", Slug: "acer", Patterns: compile(`(?i)\bacer\b`, `(?i)\baspire\b`)},
	{Name: "Samsung", Slug: "samsung", Patterns: compile(`(?i)\bsamsung\b`)},
	{Name: "Kingston", Slug: "kingston", Patterns: compile(`(?i)\bkingston\b`, `(?i)\bhyperx\b`, `(?i)\bfury\b`)},
	{Name: "Crucial", Slug: "crucial", Patterns: compile(`(?i)\bcrucial\b`)},
	{Name: "Corsair", Slug: "corsair", Patterns: compile(`(?i)\bcorsair\b`, `(?i)\bvengeance\b`)},
	{Name: "Adata", Slug: "adata", Patterns: compile(`(?i)\badata\b`)},
	{Name: "Transcend", Slug: "transcend", Patterns: compile(`(?i)\btranscend\b`)},
	{Name: "SanDisk", Slug: "sandisk", Patterns: compile(`(?i)\bsandisk\b`)},
	{Name: "Seagate", Slug: "seagate", Patterns: compile(`(?i)\bseagate\b`, `(?i)\bbarracuda\b`)},
	{Name: "Western Digital", Slug: "western-digital", Patterns: compile(`(?i)western digital`, `(?i)\bwd\b`)},
	{Name: "Toshiba", Slug: "toshiba", Patterns: compile(`(?i)\btoshiba\b`)},
	{Name: "Logitech", Slug: "logitech", Patterns: compile(`(?i)\blogitech\b`)},
	{Name: "Microsoft", Slug: "microsoft", Patterns: compile(`(?i)\bmicrosoft\b`, `(?i)\bsurface\b`)},
	{Name: "Epson", Slug: "epson", Patterns: compile(`(?i)\bepson\b`)},
	{Name: "Canon", Slug: "canon", Patterns: compile(`(?i)\bcanon\b`)},
	{Name: "TP-Link", Slug: "tp-link", Patterns: compile(`(?i)tp[- ]link`)},
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
