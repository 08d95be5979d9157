// Filmoteca - Movie Catalog Query and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/filmoteca

package api

import (
	"fmt"

	"github.com/tomtom215/filmoteca/internal/models"
)

func monthMessage(month string, n int64) string {
	return fmt.Sprintf("%d cantidad de películas fueron estrenadas en el mes de %s", n, month)
}

func dayMessage(day string, n int64) string {
	return fmt.Sprintf("%d cantidad de películas fueron estrenadas en los días %s", n, day)
}

func scoreMessage(s *models.TitleScore) string {
	if s.Anio == 0 {
		return fmt.Sprintf("La película %s tiene un score de %.2f", s.Titulo, s.Popularidad)
	}
	return fmt.Sprintf("La película %s fue estrenada en el año %d con un score de %.2f",
		s.Titulo, s.Anio, s.Popularidad)
}

func votesMessage(v *models.TitleVotes, minVotes int64) string {
	if !v.CumpleMinimo {
		return fmt.Sprintf("La película %s no cumple con el mínimo de %d valoraciones (tiene %d)",
			v.Titulo, minVotes, v.Votos)
	}
	return fmt.Sprintf("La película %s fue estrenada en el año %d. La misma cuenta con un total de %d valoraciones, con un promedio de %.2f",
		v.Titulo, v.Anio, v.Votos, v.Promedio)
}

func actorMessage(a *models.ActorStats) string {
	return fmt.Sprintf("El actor %s ha participado de %d filmaciones, el mismo ha conseguido un retorno de %.2f con un promedio de %.2f por filmación",
		a.Actor, a.CantidadPeliculas, a.RetornoTotal, a.RetornoPromedio)
}

func directorMessage(d *models.DirectorStats) string {
	return fmt.Sprintf("El director %s ha conseguido un retorno total de %.2f en %d películas",
		d.Director, d.RetornoTotal, len(d.Peliculas))
}
