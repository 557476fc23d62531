package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/orgauth/internal/application/organization"
	"github.com/amirhosseinghanipour/orgauth/internal/domain"
	domerrors "github.com/amirhosseinghanipour/orgauth/internal/domain/errors"
	"github.com/amirhosseinghanipour/orgauth/internal/infrastructure/http/middleware"
)

type OrganizationsHandler struct {
	create    *organization.CreateOrganization
	get       *organization.GetOrganization
	list      *organization.ListOrganizations
	addMember *organization.AddMember
	audit     *Auditor
	log       zerolog.Logger
}

func NewOrganizationsHandler(
	create *organization.CreateOrganization,
	get *organization.GetOrganization,
	list *organization.ListOrganizations,
	addMember *organization.AddMember,
	audit *Auditor,
	log zerolog.Logger,
) *OrganizationsHandler {
	return &OrganizationsHandler{create: create, get: get, list: list, addMember: addMember, audit: audit, log: log}
}

type organizationResponse struct {
	OrgID       string  `json:"orgId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toOrganizationResponse(o *domain.Organization) organizationResponse {
	return organizationResponse{OrgID: o.ID.String(), Name: o.Name, Description: o.Description}
}

// callerID parses the authenticated id. An unparseable id cannot name a
// stored user, so the nil UUID stands in and lookups report it missing.
func callerID(r *http.Request) domain.UserID {
	id, err := domain.ParseUserID(middleware.AuthFromContext(r.Context()))
	if err != nil {
		return domain.UserID{}
	}
	return id
}

func orgIDParam(r *http.Request) domain.OrganizationID {
	id, err := domain.ParseOrganizationID(chi.URLParam(r, "orgId"))
	if err != nil {
		return domain.OrganizationID{}
	}
	return id
}

func (h *OrganizationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := callerID(r)
	body, err := decodeObject(w, r)
	if err != nil {
		writeClientErr(w)
		return
	}
	if typeErrs := body.typeErrors([]string{"name"}, []string{"description"}); typeErrs != nil {
		writeValidation(w, typeErrs)
		return
	}
	desc, _ := body.optionalStr("description")
	org, err := h.create.Execute(r.Context(), organization.CreateOrganizationInput{
		OwnerID:     ownerID,
		Name:        body.str("name"),
		Description: desc,
	})
	if err != nil {
		h.audit.Record(r, "organization.create", ownerID.String(), false, err.Error())
		var verr *domerrors.ValidationError
		switch {
		case errors.Is(err, domerrors.ErrUserNotFound):
			writeErr(w, http.StatusNotFound, "User not found")
		case errors.As(err, &verr):
			writeValidation(w, verr)
		case errors.Is(err, domerrors.ErrOrganizationConflict):
			writeClientErr(w)
		default:
			h.log.Error().Err(err).Msg("create organization failed")
			writeClientErr(w)
		}
		return
	}
	h.audit.Record(r, "organization.create", ownerID.String(), true, "")
	writeSuccess(w, http.StatusCreated, "Organisation created successfully", toOrganizationResponse(org))
}

func (h *OrganizationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.get.Execute(r.Context(), organization.GetOrganizationInput{
		UserID: callerID(r),
		OrgID:  orgIDParam(r),
	})
	if err != nil {
		h.writeLookupErr(w, err, "get organization failed")
		return
	}
	writeSuccess(w, http.StatusOK, "Organization found", toOrganizationResponse(org))
}

func (h *OrganizationsHandler) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.list.Execute(r.Context(), callerID(r))
	if err != nil {
		h.writeLookupErr(w, err, "list organizations failed")
		return
	}
	data := make([]organizationResponse, 0, len(orgs))
	for _, o := range orgs {
		data = append(data, toOrganizationResponse(o))
	}
	writeSuccess(w, http.StatusOK, "Organizations found", data)
}

func (h *OrganizationsHandler) writeLookupErr(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domerrors.ErrOrganizationNotFound):
		writeErr(w, http.StatusNotFound, "Organization not found")
	default:
		h.log.Error().Err(err).Msg(logMsg)
		writeErr(w, http.StatusInternalServerError, "Internal server error")
	}
}

// AddMember links body.userId to the organization in the path.
func (h *OrganizationsHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	actingID := callerID(r)
	body, err := decodeObject(w, r)
	if err != nil {
		body = jsonObject{}
	}
	targetID, err := domain.ParseUserID(body.str("userId"))
	if err != nil {
		targetID = domain.UserID{}
	}
	err = h.addMember.Execute(r.Context(), organization.AddMemberInput{
		ActingUserID: actingID,
		OrgID:        orgIDParam(r),
		TargetUserID: targetID,
	})
	if err != nil {
		h.audit.Record(r, "organization.add_member", actingID.String(), false, err.Error())
		switch {
		case errors.Is(err, domerrors.ErrUserNotFound):
			writeErr(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domerrors.ErrTargetUserNotFound):
			writeErr(w, http.StatusNotFound, "The User was not found")
		case errors.Is(err, domerrors.ErrOrganizationNotFound):
			writeErr(w, http.StatusNotFound, "Organization not found")
		case errors.Is(err, domerrors.ErrNotAMember):
			writeErr(w, http.StatusBadRequest, "You are not in this organization")
		default:
			h.log.Error().Err(err).Msg("add member failed")
			writeErr(w, http.StatusBadRequest, "Server error")
		}
		return
	}
	h.audit.Record(r, "organization.add_member", actingID.String(), true, "")
	writeJSON(w, http.StatusOK, successEnvelope{
		Status:  statusSuccess,
		Message: "User added to organization successfully",
	})
}
