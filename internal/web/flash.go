package web

import (
	"errors"
	"net/http"

	"petak-app/internal/model"
	"petak-app/internal/store"
)

// adminMessage translates store and validation errors into the messages the
// admin editor shows. Unknown errors yield "".
func adminMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrDateRequired):
		return "Datum meča je obavezan."
	case errors.Is(err, model.ErrNegativeScore):
		return "Rezultat ne može biti negativan."
	case errors.Is(err, model.ErrTeamSize):
		return "Svaki tim mora imati tačno 5 igrača."
	case errors.Is(err, model.ErrDuplicatePlayer):
		return "Isti igrač je izabran više puta."
	case errors.Is(err, model.ErrMVPNotInTeams):
		return "MVP mora igrati za jedan od timova."
	case errors.Is(err, model.ErrScorerNotInTeams):
		return "Strelac mora igrati za jedan od timova."
	case errors.Is(err, model.ErrAssisterNotInTeams):
		return "Asistent mora igrati za jedan od timova."
	case errors.Is(err, model.ErrContributionValue):
		return "Golovi i asistencije moraju biti najmanje 1."
	case errors.Is(err, store.ErrUnknownPlayer):
		return "Nepoznat igrač."
	case errors.Is(err, store.ErrSlugTaken):
		return "Slug je već zauzet."
	case errors.Is(err, store.ErrEmailTaken):
		return "Email je već zauzet."
	case errors.Is(err, store.ErrInvalid):
		return "Neispravni podaci."
	case errors.Is(err, store.ErrNotFound):
		return "Nije pronađeno."
	case errors.Is(err, errBadPeriod):
		return "Neispravan period."
	}
	return ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrSlugTaken), errors.Is(err, store.ErrEmailTaken):
		return http.StatusConflict
	case adminMessage(err) != "":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
