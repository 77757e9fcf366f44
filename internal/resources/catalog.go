package resources

import (
	"slices"

	"github.com/JaimeStill/backoffice/pkg/formdata"
)

var imageSlot = Slot{
	Name:    "images",
	Sources: []string{"image"},
	Form:    formdata.Slot{ExistingField: "existing_images", FileField: "image", Format: formdata.FormatComma},
	Accept:  "image/*",
}

var catalog = []Definition{
	{
		Name:  "blogs",
		Title: "Blogs",
		Endpoints: Endpoints{
			List:   "/admin/blog/get",
			Add:    "/admin/blog/add",
			Update: "/admin/blog/update/{id}",
			Delete: "/admin/blog/delete/{id}",
		},
		SearchFields: []string{"title", "category_name", "description"},
		SortFields:   []string{"title", "category_name", "created_at"},
		Columns:      []string{"id", "title", "category_name", "created_at"},
		Slots: []Slot{{
			Name:    "images",
			Sources: []string{"image"},
			Form:    formdata.Slot{ExistingField: "old_images", FileField: "image", Format: formdata.FormatJSON},
			Accept:  "image/*",
		}},
		HTMLFields: []string{"description"},
	},
	{
		Name:  "blog-categories",
		Title: "Blog Categories",
		Endpoints: Endpoints{
			List:   "/admin/blogCategory/get",
			Add:    "/admin/blogCategory/add",
			Update: "/admin/blogCategory/edit/{id}",
			Delete: "/admin/blogCategory/delete/{id}",
		},
		SearchFields: []string{"name"},
		SortFields:   []string{"name"},
		Columns:      []string{"id", "name"},
	},
	{
		Name:  "portfolios",
		Title: "Portfolios",
		Endpoints: Endpoints{
			List:   "/admin/portfolio/get",
			Add:    "/admin/portfolio/add",
			Update: "/admin/portfolio/update/{id}",
			Delete: "/admin/portfolio/delete/{id}",
		},
		SearchFields: []string{"title", "category_name", "technologies"},
		SortFields:   []string{"title", "category_name", "created_at"},
		Columns:      []string{"id", "title", "category_name", "technologies"},
		Slots:        []Slot{imageSlot},
		HTMLFields:   []string{"description"},
	},
	{
		Name:  "portfolio-categories",
		Title: "Portfolio Categories",
		Endpoints: Endpoints{
			List:   "/admin/portfolioCategory/get",
			Add:    "/admin/portfolioCategory/add",
			Update: "/admin/portfolioCategory/edit/{id}",
			Delete: "/admin/portfolioCategory/delete/{id}",
		},
		SearchFields: []string{"name"},
		SortFields:   []string{"name"},
		Columns:      []string{"id", "name"},
	},
	{
		Name:  "services",
		Title: "Services",
		Endpoints: Endpoints{
			List:   "/admin/service/get",
			Add:    "/admin/service/add",
			Update: "/admin/service/edit/{id}",
			Delete: "/admin/service/delete/{id}",
		},
		SearchFields: []string{"title", "short_description", "category_name"},
		SortFields:   []string{"title", "category_name"},
		Columns:      []string{"id", "title", "category_name", "short_description"},
		Slots:        []Slot{imageSlot},
		HTMLFields:   []string{"description"},
	},
	{
		Name:  "service-categories",
		Title: "Service Categories",
		Endpoints: Endpoints{
			List:   "/admin/serviceCategory/get",
			Add:    "/admin/serviceCategory/add",
			Update: "/admin/serviceCategory/update/{id}",
			Delete: "/admin/serviceCategory/delete/{id}",
		},
		SearchFields: []string{"name"},
		SortFields:   []string{"name"},
		Columns:      []string{"id", "name", "icon"},
		Slots: []Slot{{
			Name:    "icon",
			Sources: []string{"icon"},
			Form:    formdata.Slot{FileField: "icon"},
			Accept:  "image/*",
		}},
	},
	{
		Name:  "careers",
		Title: "Career Applications",
		Endpoints: Endpoints{
			List:   "/admin/career/get",
			Delete: "/admin/career/delete/{id}",
			Toggle: "/admin/career/toggle-status/{id}",
			Resume: "/admin/career/downloadResume/{id}",
		},
		SearchFields: []string{"name", "email", "role"},
		SortFields:   []string{"name", "role", "created_at"},
		Columns:      []string{"id", "name", "email", "role", "is_active"},
	},
	{
		Name:         "career-roles",
		Title:        "Career Roles",
		Endpoints:    Endpoints{List: "/admin/career/list"},
		SearchFields: []string{"name"},
		SortFields:   []string{"name"},
		Columns:      []string{"id", "name"},
	},
	{
		Name:  "vacancies",
		Title: "Open Roles",
		Endpoints: Endpoints{
			List:   "/admin/vacancy/get",
			Add:    "/admin/vacancy/add",
			Update: "/admin/vacancy/update/{id}",
			Delete: "/admin/vacancy/delete/{id}",
			Toggle: "/admin/vacancy/toggle-status/{id}",
		},
		SearchFields: []string{"position", "experience", "status"},
		SortFields:   []string{"position", "experience", "status"},
		Columns:      []string{"id", "position", "experience", "status", "is_active"},
	},
	{
		Name:  "reviews",
		Title: "Reviews",
		Endpoints: Endpoints{
			List:   "/admin/review/get",
			Find:   "/admin/review/{id}",
			Delete: "/admin/review/delete/{id}",
		},
		SearchFields: []string{"name", "designation"},
		SortFields:   []string{"name", "designation", "star"},
		Columns:      []string{"id", "name", "designation", "star"},
	},
	{
		Name:  "faqs",
		Title: "FAQs",
		Endpoints: Endpoints{
			List:   "/admin/faq/get",
			Add:    "/admin/faq/add",
			Update: "/admin/faq/update/{id}",
			Delete: "/admin/faq/delete/{id}",
		},
		SearchFields: []string{"question", "answer"},
		SortFields:   []string{"question"},
		Columns:      []string{"id", "question"},
		HTMLFields:   []string{"answer"},
	},
	{
		Name:  "contacts",
		Title: "Contacts",
		Endpoints: Endpoints{
			List:   "/admin/contact/get",
			Find:   "/admin/contact/view/{id}",
			Delete: "/admin/contact/delete/{id}",
		},
		SearchFields: []string{"name", "email", "subject"},
		SortFields:   []string{"name", "email", "created_at"},
		Columns:      []string{"id", "name", "email", "subject"},
	},
	{
		Name:  "about",
		Title: "About",
		Endpoints: Endpoints{
			List:   "/admin/about/get",
			Update: "/admin/about/edit/{id}",
		},
		SearchFields: []string{"title", "description", "clients", "initiatives", "trophies"},
		SortFields:   []string{"title"},
		Columns:      []string{"id", "title", "clients", "trophies"},
		Slots: []Slot{
			imageSlot,
			{
				Name:    "videos",
				Sources: []string{"video"},
				Form:    formdata.Slot{ExistingField: "existing_videos", FileField: "video", Format: formdata.FormatComma},
				Accept:  "video/*",
			},
		},
		HTMLFields: []string{"description"},
	},
}

// Catalog returns every built-in resource definition.
func Catalog() []Definition {
	out := slices.Clone(catalog)
	for i := range out {
		if out[i].PageSize == 0 {
			out[i].PageSize = 5
		}
	}
	return out
}

// Lookup finds a built-in definition by name.
func Lookup(name string) (Definition, bool) {
	for _, d := range Catalog() {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}
