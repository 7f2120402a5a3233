// ReelMatch - Group Watch Voting and Content Discovery
// Copyright 2026 ReelMatch Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelmatch/reelmatch

package tmdb

import "github.com/reelmatch/reelmatch/internal/models"

// Embedded fallback catalog, served when the provider is unreachable for a
// whole discovery run. Entries carry the same raw shape as live discover
// results and every field the quality gate checks, so fallback candidates
// flow through the exact same validation path as live ones.
//
// The movie list leans Spanish: the product's main audience picked Spanish
// comedies often enough that a degraded session should still offer them.

// FallbackCandidates returns a copy of the curated catalog for the media
// type. Callers may filter and mutate the result freely.
func FallbackCandidates(mediaType models.MediaType) []models.RawCandidate {
	var src []models.RawCandidate
	switch mediaType {
	case models.MediaTypeMovie:
		src = fallbackMovies
	case models.MediaTypeTV:
		src = fallbackSeries
	default:
		return nil
	}

	out := make([]models.RawCandidate, len(src))
	copy(out, src)
	for i := range out {
		genres := make([]int, len(src[i].GenreIDs))
		copy(genres, src[i].GenreIDs)
		out[i].GenreIDs = genres
	}
	return out
}

var fallbackMovies = []models.RawCandidate{
	{
		ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15",
		Overview:         "An insomniac office worker and a devil-may-care soapmaker form an underground fight club that evolves into something much more.",
		PosterPath:       "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
		GenreIDs:         []int{18},
		VoteAverage:      8.4, VoteCount: 27000, Popularity: 73.4,
		OriginalLanguage: "en",
	},
	{
		ID: 13, Title: "Forrest Gump", ReleaseDate: "1994-06-23",
		Overview:         "A man with a low IQ has accomplished great things in his life and been present during significant historic events.",
		PosterPath:       "/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg",
		GenreIDs:         []int{35, 18, 10749},
		VoteAverage:      8.5, VoteCount: 25300, Popularity: 68.9,
		OriginalLanguage: "en",
	},
	{
		ID: 278, Title: "The Shawshank Redemption", ReleaseDate: "1994-09-23",
		Overview:         "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		PosterPath:       "/q6y0Go1tsGEsmtFryDOJo3dEmqu.jpg",
		GenreIDs:         []int{18},
		VoteAverage:      8.7, VoteCount: 26100, Popularity: 95.1,
		OriginalLanguage: "en",
	},
	{
		ID: 238, Title: "The Godfather", ReleaseDate: "1972-03-14",
		Overview:         "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		PosterPath:       "/3bhkrj58Vtu7enYsRolD1fZdja1.jpg",
		GenreIDs:         []int{18, 80},
		VoteAverage:      8.7, VoteCount: 19600, Popularity: 112.3,
		OriginalLanguage: "en",
	},
	{
		ID: 424, Title: "Schindler's List", ReleaseDate: "1993-11-30",
		Overview:         "In German-occupied Poland during World War II, industrialist Oskar Schindler gradually becomes concerned for his Jewish workforce.",
		PosterPath:       "/sF1U4EUQS8YHUYjNl3pMGNIQyr0.jpg",
		GenreIDs:         []int{18, 36, 10752},
		VoteAverage:      8.6, VoteCount: 15400, Popularity: 55.7,
		OriginalLanguage: "en",
	},
	{
		ID: 253941, Title: "Ocho apellidos vascos", ReleaseDate: "2014-03-14",
		Overview:         "Un sevillano se hace pasar por vasco para conquistar a una chica de Euskadi, con consecuencias hilarantes para ambas familias.",
		PosterPath:       "/kZzZHVerAnPx9QQsaI4j5rZMfNd.jpg",
		GenreIDs:         []int{35, 10749},
		VoteAverage:      6.4, VoteCount: 1490, Popularity: 22.1,
		OriginalLanguage: "es",
	},
	{
		ID: 334527, Title: "Perdiendo el norte", ReleaseDate: "2015-03-06",
		Overview:         "Dos amigos madrileños emigran a Alemania en busca de trabajo, pero las cosas no salen como esperaban en su nueva vida.",
		PosterPath:       "/5N1ZdC4kHkJo7PgP3YQnCZqYDMO.jpg",
		GenreIDs:         []int{35, 18},
		VoteAverage:      6.2, VoteCount: 812, Popularity: 14.7,
		OriginalLanguage: "es",
	},
	{
		ID: 76341, Title: "Mad Max: Fury Road", ReleaseDate: "2015-05-15",
		Overview:         "En un mundo postapocalíptico, Max se une a Furiosa para huir de un tirano que controla el agua en el desierto.",
		PosterPath:       "/8tZYtuWezp8JbcsvHYO0O46tFbo.jpg",
		GenreIDs:         []int{28, 12, 878},
		VoteAverage:      7.6, VoteCount: 22100, Popularity: 64.3,
		OriginalLanguage: "en",
	},
	{
		ID: 120467, Title: "The Grand Budapest Hotel", ReleaseDate: "2014-03-28",
		Overview:         "Las aventuras de Gustave H, legendario conserje de un famoso hotel europeo, y Zero Moustafa, el botones que se convierte en su protegido.",
		PosterPath:       "/eWdyYQreja6JGCzqHWXpWHDrrPo.jpg",
		GenreIDs:         []int{35, 18},
		VoteAverage:      8.1, VoteCount: 14900, Popularity: 41.2,
		OriginalLanguage: "en",
	},
	{
		ID: 25376, Title: "El secreto de sus ojos", ReleaseDate: "2009-08-13",
		Overview:         "Un investigador judicial jubilado decide escribir una novela sobre un caso de asesinato que no pudo resolver veinticinco años atrás.",
		PosterPath:       "/dTSnHQqRodWehyrCJUMDMy0Yps2.jpg",
		GenreIDs:         []int{18, 53, 10749},
		VoteAverage:      8.2, VoteCount: 2410, Popularity: 18.9,
		OriginalLanguage: "es",
	},
	{
		ID: 157336, Title: "Interstellar", ReleaseDate: "2014-11-07",
		Overview:         "Un grupo de exploradores emprende la misión más importante de la historia: viajar más allá de nuestra galaxia para descubrir un nuevo hogar.",
		PosterPath:       "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
		GenreIDs:         []int{12, 18, 878},
		VoteAverage:      8.4, VoteCount: 34200, Popularity: 98.5,
		OriginalLanguage: "en",
	},
	{
		ID: 396535, Title: "Train to Busan", ReleaseDate: "2016-07-20",
		Overview:         "Un virus zombi se extiende por Corea del Sur mientras un padre y su hija viajan en un tren de alta velocidad hacia Busan.",
		PosterPath:       "/vNVFt6dtcqnI7hqa6LFBUibuFiw.jpg",
		GenreIDs:         []int{28, 27, 53},
		VoteAverage:      7.8, VoteCount: 9100, Popularity: 45.0,
		OriginalLanguage: "en",
	},
	{
		ID: 490132, Title: "Green Book", ReleaseDate: "2018-11-16",
		Overview:         "Un rudo italoamericano del Bronx es contratado como chófer de un virtuoso pianista negro durante una gira por el sur de Estados Unidos en 1962.",
		PosterPath:       "/7BsvSuDQuoqhWmU2fL7W2GOcZHU.jpg",
		GenreIDs:         []int{18, 35},
		VoteAverage:      8.2, VoteCount: 12700, Popularity: 38.6,
		OriginalLanguage: "en",
	},
	{
		ID: 496243, Title: "Parasite", ReleaseDate: "2019-05-30",
		Overview:         "Toda la familia de Ki-taek está sin trabajo. Cuando su hijo consigue entrar como profesor particular en una familia adinerada, comienza un engaño imparable.",
		PosterPath:       "/7IiTTgloJzvGI1TAYymCfbfl3vT.jpg",
		GenreIDs:         []int{35, 53, 18},
		VoteAverage:      8.5, VoteCount: 17600, Popularity: 77.8,
		OriginalLanguage: "en",
	},
	{
		ID: 475557, Title: "Joker", ReleaseDate: "2019-10-04",
		Overview:         "Arthur Fleck, un cómico fracasado marginado por la sociedad, inicia una espiral de caos y revolución en Gotham City.",
		PosterPath:       "/udDclJoHjfjb8Ekgsd4FDteOkCU.jpg",
		GenreIDs:         []int{80, 53, 18},
		VoteAverage:      8.2, VoteCount: 24800, Popularity: 88.1,
		OriginalLanguage: "en",
	},
	{
		ID: 299534, Title: "Avengers: Endgame", ReleaseDate: "2019-04-26",
		Overview:         "Tras los devastadores acontecimientos provocados por Thanos, los Vengadores se reúnen una vez más para intentar deshacer sus acciones.",
		PosterPath:       "/or06FN3Dka5tukK1e9sl16pB3iy.jpg",
		GenreIDs:         []int{12, 878, 28},
		VoteAverage:      8.3, VoteCount: 25300, Popularity: 91.4,
		OriginalLanguage: "en",
	},
	{
		ID: 508442, Title: "Soul", ReleaseDate: "2020-12-25",
		Overview:         "Joe es un profesor de música cuya verdadera pasión es el jazz. Un accidente lo lleva a un viaje para responder la gran pregunta sobre el sentido de la vida.",
		PosterPath:       "/hm58Jw4Lw8OIeECIq5qyPYhAeRJ.jpg",
		GenreIDs:         []int{16, 35, 14},
		VoteAverage:      8.1, VoteCount: 11200, Popularity: 52.0,
		OriginalLanguage: "en",
	},
}

var fallbackSeries = []models.RawCandidate{
	{
		ID: 1396, Name: "Breaking Bad", FirstAirDate: "2008-01-20",
		Overview:         "Un profesor de química de instituto diagnosticado de cáncer se asocia con un antiguo alumno para fabricar y vender metanfetamina.",
		PosterPath:       "/ggFHVNu6YYI5L9pCfOacjizRGt.jpg",
		GenreIDs:         []int{18, 80},
		VoteAverage:      8.9, VoteCount: 13400, Popularity: 245.8,
		OriginalLanguage: "en",
	},
	{
		ID: 71446, Name: "La casa de papel", FirstAirDate: "2017-05-02",
		Overview:         "Ocho ladrones se encierran con rehenes en la Fábrica Nacional de Moneda y Timbre mientras un cerebro criminal manipula a la policía desde fuera.",
		PosterPath:       "/reEMJA1uzscCbkpeRJeTT2bjqUp.jpg",
		GenreIDs:         []int{80, 18, 10759},
		VoteAverage:      8.2, VoteCount: 18300, Popularity: 198.2,
		OriginalLanguage: "es",
	},
	{
		ID: 66732, Name: "Stranger Things", FirstAirDate: "2016-07-15",
		Overview:         "Cuando un niño desaparece en un pequeño pueblo, sus amigos, su familia y la policía se ven envueltos en una serie de misteriosos sucesos sobrenaturales.",
		PosterPath:       "/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
		GenreIDs:         []int{18, 10765, 9648},
		VoteAverage:      8.6, VoteCount: 17000, Popularity: 310.5,
		OriginalLanguage: "en",
	},
	{
		ID: 1399, Name: "Game of Thrones", FirstAirDate: "2011-04-17",
		Overview:         "Nueve familias nobles luchan por el control de las tierras de Poniente mientras un antiguo enemigo despierta tras milenios de letargo.",
		PosterPath:       "/1XS1oqL89opfnbLl8WnZY1O1uJx.jpg",
		GenreIDs:         []int{10765, 18, 10759},
		VoteAverage:      8.5, VoteCount: 24100, Popularity: 402.7,
		OriginalLanguage: "en",
	},
	{
		ID: 60625, Name: "Rick and Morty", FirstAirDate: "2013-12-02",
		Overview:         "Un científico alcohólico arrastra a su nieto a aventuras absurdas por el multiverso mientras la familia intenta mantener una vida normal.",
		PosterPath:       "/gdIrmf2DdY5mgN6ycVP0XlzKzbE.jpg",
		GenreIDs:         []int{16, 35, 10765},
		VoteAverage:      8.7, VoteCount: 9400, Popularity: 187.3,
		OriginalLanguage: "en",
	},
	{
		ID: 63174, Name: "Lucifer", FirstAirDate: "2016-01-25",
		Overview:         "Aburrido del infierno, el diablo se muda a Los Ángeles, abre un club nocturno y colabora con la policía resolviendo crímenes.",
		PosterPath:       "/ekZobS8isE6mA53RAiGDG93hBxL.jpg",
		GenreIDs:         []int{80, 10765},
		VoteAverage:      8.5, VoteCount: 14600, Popularity: 221.9,
		OriginalLanguage: "en",
	},
	{
		ID: 2316, Name: "The Office", FirstAirDate: "2005-03-24",
		Overview:         "Falso documental sobre el día a día de los empleados de una oficina de venta de papel en Scranton, Pensilvania.",
		PosterPath:       "/7DJKHzAi83BmQrWLrYYOqcoKfhR.jpg",
		GenreIDs:         []int{35},
		VoteAverage:      8.6, VoteCount: 4000, Popularity: 150.0,
		OriginalLanguage: "en",
	},
	{
		ID: 85271, Name: "WandaVision", FirstAirDate: "2021-01-15",
		Overview:         "Wanda Maximoff y Visión viven una idílica vida suburbana mientras empiezan a sospechar que nada es lo que parece en su pequeño pueblo.",
		PosterPath:       "/glKDfE6btIRcVB5zrjspRIs4r52.jpg",
		GenreIDs:         []int{10765, 9648, 18},
		VoteAverage:      8.3, VoteCount: 11500, Popularity: 95.2,
		OriginalLanguage: "en",
	},
}
