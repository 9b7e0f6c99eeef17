// Package checklists holds the staff prep checklists: static templates plus
// per-date response and completion tracking.
package checklists

// ItemType is the input widget a checklist line renders as.
type ItemType string

const (
	Checkbox ItemType = "checkbox"
	Number   ItemType = "number"
	Select   ItemType = "select"
	Text     ItemType = "text"
)

// AlertRange flags a numeric reading outside safe bounds (temp logs).
type AlertRange struct {
	Below *float64 `json:"below,omitempty"`
	Above *float64 `json:"above,omitempty"`
}

type Item struct {
	ID       string      `json:"id"`
	Label    string      `json:"label"`
	Type     ItemType    `json:"type"`
	Options  []string    `json:"options,omitempty"`
	Unit     string      `json:"unit,omitempty"`
	Required bool        `json:"required"`
	AlertIf  *AlertRange `json:"alertIf,omitempty"`
}

type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

type Template struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ScheduledTime string    `json:"scheduledTime"`
	Sections      []Section `json:"sections"`
}

// TotalItems counts every line across sections; progress is measured against
// this.
func (t Template) TotalItems() int {
	n := 0
	for _, s := range t.Sections {
		n += len(s.Items)
	}
	return n
}

func f(v float64) *float64 { return &v }

var templates = []Template{
	{
		ID:            "baker-opening",
		Name:          "Baker Opening",
		ScheduledTime: "04:00",
		Sections: []Section{
			{
				Title: "First 15 Minutes",
				Items: []Item{
					{ID: "clock-in", Label: "Clock in", Type: Checkbox, Required: true},
					{ID: "check-dashboard", Label: "Check prep dashboard for orders", Type: Checkbox, Required: true},
					{ID: "same-day-orders", Label: "Any same-day orders?", Type: Select, Options: []string{"None", "Yes - noted"}, Required: true},
				},
			},
			{
				Title: "Equipment Startup",
				Items: []Item{
					{ID: "deck-oven-on", Label: "Deck oven ON", Type: Checkbox, Required: true},
					{ID: "deck-oven-temp", Label: "Deck oven temp", Type: Number, Unit: "°F", Required: true},
					{ID: "convection-on", Label: "Convection oven ON", Type: Checkbox, Required: true},
					{ID: "convection-temp", Label: "Convection oven temp", Type: Number, Unit: "°F", Required: true},
					{ID: "proofer-on", Label: "Proofer ON (78-82°F)", Type: Checkbox, Required: true},
					{ID: "proofer-temp", Label: "Proofer temp", Type: Number, Unit: "°F", Required: true, AlertIf: &AlertRange{Below: f(75), Above: f(85)}},
				},
			},
			{
				Title: "Dough Check",
				Items: []Item{
					{ID: "overnight-dough", Label: "Overnight dough condition", Type: Select, Options: []string{"Good", "Over-proofed", "Under-proofed", "N/A"}, Required: true},
					{ID: "specialty-bread", Label: "Today's specialty bread", Type: Text},
				},
			},
			{
				Title: "Temp Log",
				Items: []Item{
					{ID: "walkin-cooler-temp", Label: "Walk-in cooler temp", Type: Number, Unit: "°F", Required: true, AlertIf: &AlertRange{Above: f(40)}},
					{ID: "walkin-freezer-temp", Label: "Walk-in freezer temp", Type: Number, Unit: "°F", Required: true, AlertIf: &AlertRange{Above: f(0)}},
				},
			},
		},
	},
	{
		ID:            "pastry-opening",
		Name:          "Pastry Opening",
		ScheduledTime: "05:00",
		Sections: []Section{
			{
				Title: "Equipment",
				Items: []Item{
					{ID: "convection-temp", Label: "Convection oven temp", Type: Number, Unit: "°F", Required: true},
					{ID: "pastry-cooler-temp", Label: "Pastry cooler temp", Type: Number, Unit: "°F", Required: true, AlertIf: &AlertRange{Above: f(40)}},
					{ID: "sheeter-ready", Label: "Sheeter clean and ready", Type: Checkbox, Required: true},
					{ID: "station-sanitized", Label: "Pastry station sanitized", Type: Checkbox, Required: true},
				},
			},
			{
				Title: "Laminated Dough Check",
				Items: []Item{
					{ID: "croissant-dough", Label: "Croissant dough condition", Type: Select, Options: []string{"Good", "Needs attention", "N/A"}, Required: true},
					{ID: "danish-dough", Label: "Danish dough condition", Type: Select, Options: []string{"Good", "Needs attention", "N/A"}, Required: true},
				},
			},
			{
				Title: "Allergen Check",
				Items: []Item{
					{ID: "gf-separated", Label: "Gluten-free items separated", Type: Checkbox, Required: true},
					{ID: "nuts-labeled", Label: "Nut items clearly labeled", Type: Checkbox, Required: true},
					{ID: "allergen-utensils", Label: "Allergen utensils designated", Type: Checkbox, Required: true},
				},
			},
		},
	},
	{
		ID:            "foh-opening",
		Name:          "FOH Opening",
		ScheduledTime: "06:30",
		Sections: []Section{
			{
				Title: "Front Counter",
				Items: []Item{
					{ID: "register-count", Label: "Count register drawer", Type: Number, Unit: "$", Required: true},
					{ID: "pastry-case-stocked", Label: "Pastry case stocked", Type: Checkbox, Required: true},
					{ID: "bread-shelf-stocked", Label: "Bread shelf stocked", Type: Checkbox, Required: true},
					{ID: "labels-out", Label: "Price labels and allergen cards out", Type: Checkbox, Required: true},
				},
			},
			{
				Title: "Coffee & Dining",
				Items: []Item{
					{ID: "espresso-on", Label: "Espresso machine ON and purged", Type: Checkbox, Required: true},
					{ID: "brew-coffee", Label: "Drip coffee brewed", Type: Checkbox, Required: true},
					{ID: "dining-wiped", Label: "Dining tables wiped", Type: Checkbox, Required: true},
				},
			},
			{
				Title: "Orders",
				Items: []Item{
					{ID: "pickup-orders-staged", Label: "Online pickup orders staged and labeled", Type: Checkbox, Required: true},
					{ID: "order-count", Label: "Pickup orders staged", Type: Number, Required: true},
				},
			},
		},
	},
	{
		ID:            "closing",
		Name:          "Closing",
		ScheduledTime: "18:00",
		Sections: []Section{
			{
				Title: "Food Safety",
				Items: []Item{
					{ID: "walkin-cooler-temp", Label: "Walk-in cooler temp", Type: Number, Unit: "°F", Required: true, AlertIf: &AlertRange{Above: f(40)}},
					{ID: "perishables-covered", Label: "Perishables covered and dated", Type: Checkbox, Required: true},
					{ID: "day-olds-pulled", Label: "Day-old product pulled for donation", Type: Checkbox, Required: true},
				},
			},
			{
				Title: "Shutdown",
				Items: []Item{
					{ID: "ovens-off", Label: "Ovens OFF", Type: Checkbox, Required: true},
					{ID: "proofer-off", Label: "Proofer OFF", Type: Checkbox, Required: true},
					{ID: "register-closed", Label: "Register closed out", Type: Checkbox, Required: true},
					{ID: "doors-locked", Label: "Doors locked", Type: Checkbox, Required: true},
					{ID: "closing-notes", Label: "Notes for the morning crew", Type: Text},
				},
			},
		},
	},
}

// Templates returns every checklist in schedule order.
func Templates() []Template { return templates }

func TemplateByID(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
