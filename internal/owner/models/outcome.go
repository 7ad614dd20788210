package models

// OutcomeKind tags the navigation instruction carried by an Outcome.
type OutcomeKind int

const (
	// OutcomeShowForm re-presents an input form, optionally with violations.
	OutcomeShowForm OutcomeKind = iota + 1
	// OutcomeRedirectToDetail sends the browser to a single owner's page.
	OutcomeRedirectToDetail
	// OutcomeShowList renders several matching owners for the user to pick from.
	OutcomeShowList
	// OutcomeShowDetail renders one owner's page inline. Only the detail route
	// produces it; search and submit never do.
	OutcomeShowDetail
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeShowForm:
		return "show_form"
	case OutcomeRedirectToDetail:
		return "redirect_to_detail"
	case OutcomeShowList:
		return "show_list"
	case OutcomeShowDetail:
		return "show_detail"
	default:
		return "unknown"
	}
}

// FormKind names which input form a ShowForm outcome presents.
type FormKind string

const (
	FormFindOwners     FormKind = "owners/findOwners"
	FormCreateOrUpdate FormKind = "owners/createOrUpdateOwnerForm"
)

// View names for the non-form outcomes.
const (
	ViewOwnersList   = "owners/ownersList"
	ViewOwnerDetails = "owners/ownerDetails"
)

// Outcome is the navigation decision for one request. It is built per request
// and handed to the presentation layer; it is never persisted or shared.
type Outcome struct {
	Kind       OutcomeKind
	Form       FormKind
	Owner      *Owner
	Validation ValidationResult
	OwnerID    int
	Owners     []*Owner
}

// ShowForm re-presents form with owner's values and any violations.
func ShowForm(form FormKind, owner *Owner, validation ValidationResult) Outcome {
	return Outcome{Kind: OutcomeShowForm, Form: form, Owner: owner, Validation: validation}
}

// RedirectToDetail navigates to the owner identified by id.
func RedirectToDetail(id int) Outcome {
	return Outcome{Kind: OutcomeRedirectToDetail, OwnerID: id}
}

// ShowList renders owners in the order given.
func ShowList(owners []*Owner) Outcome {
	return Outcome{Kind: OutcomeShowList, Owners: owners}
}

// ShowDetail renders a single owner inline.
func ShowDetail(owner *Owner) Outcome {
	return Outcome{Kind: OutcomeShowDetail, Owner: owner}
}

// IsRedirect reports whether the outcome requires a new navigation rather than
// an inline render.
func (o Outcome) IsRedirect() bool {
	return o.Kind == OutcomeRedirectToDetail
}
