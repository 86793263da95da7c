package classify

import "regexp"

// Section codes: 131, 6007 / 4H6, 3E2 / 134B, 9658A / A123, B15.
var sectionCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{3,4}$`),
	regexp.MustCompile(`^\d{1,2}[A-Z]\d{1,2}$`),
	regexp.MustCompile(`^\d{3,4}[A-Z]$`),
	regexp.MustCompile(`^[A-Z]\d{2,3}$`),
}

var (
	// "131 - TEORÍA GENERAL DEL DERECHO"
	leadingCodePattern = regexp.MustCompile(`^(\d{3,4}[A-Z]?|[A-Z]\d{2,3})\s*[-–]`)
	genericCodePattern = regexp.MustCompile(`\d{3,4}[A-Z]?|\d{1,2}[A-Z]\d{1,2}|[A-Z]\d{2,3}`)
)

// Line-level code candidates, tried in order.
var lineCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[A-Z]\d?\b`),
	regexp.MustCompile(`\b\d{3,4}[A-Z]?\b`),
	regexp.MustCompile(`\b[A-Z]\d{1,2}\b`),
}

var (
	bareNumeral1to3 = regexp.MustCompile(`^\d{1,3}$`)
	bareNumeral3    = regexp.MustCompile(`^\d{3}$`)
	bareNumeral4    = regexp.MustCompile(`^\d{4}$`)
	codeWithLetter  = regexp.MustCompile(`^\d{3,4}[A-Z]$`)
)

var (
	// Free-text room numbers; four digits are left to section codes.
	lineRoomNumeral  = regexp.MustCompile(`^\d{2,3}$`)
	leadingFourDigit = regexp.MustCompile(`^\d{4}`)
	// A line holding nothing but a code token ("66U", "134B", "A12").
	lineCodeToken = regexp.MustCompile(`^(?:\d{1,2}[A-Z]\d?|\d{3,4}[A-Z]?|[A-Z]\d{1,2})$`)
	// "131 - TEORÍA GENERAL DEL DERECHO" on its own line
	lineActivityPattern = regexp.MustCompile(`^\d+\s*-\s*[A-ZÁÉÍÓÚÑ\s]+`)
)

var roomPatterns = []*regexp.Regexp{
	bareNumeral1to3,
	regexp.MustCompile(`^\d{1,2}[A-Z]\d{1,2}\s*\([A-Z\s]+\)$`), // 3E2 (PUB), 4H6 (FIL)
	regexp.MustCompile(`^(?:Aula|AULA)\s*\d+`),
	regexp.MustCompile(`^(?:Lab|LAB)[-\s]\d+`),
	regexp.MustCompile(`^(?:Sala|SALA)\s*\d+`),
	regexp.MustCompile(`^(?:Auditorio|AUDITORIO)\s*\d+`),
	regexp.MustCompile(`^(?:Piso|PISO)\s*\d+`),
	regexp.MustCompile(`^(?:Nivel|NIVEL)\s*\d+`),
	regexp.MustCompile(`^(?:Bloque|BLOQUE)\s*[A-Z]`),
	regexp.MustCompile(`^(?:Edificio|EDIFICIO)\s*\d+`),
	regexp.MustCompile(`^(?:Torre|TORRE)\s*[A-Z]`),
	regexp.MustCompile(`^[A-Z]\d{2,3}$`),
	regexp.MustCompile(`^\d{1,2}[A-Z]$`),
	regexp.MustCompile(`^[A-Z]\d{1,2}$`),
	regexp.MustCompile(`^[A-Z]-\d{2,3}$`),
	regexp.MustCompile(`^\d{1,2}-[A-Z]$`),
	regexp.MustCompile(`^[A-Z]\s\d{2,3}$`),
	regexp.MustCompile(`^\d{1,2}\s[A-Z]$`),
	regexp.MustCompile(`^(?:Aula|AULA|Sala|SALA)\s+(?:Virtual|VIRTUAL)`),
	regexp.MustCompile(`(?i)^(?:zoom|meet|teams|virtual|online|remoto|híbrido|presencial)$`),
	regexp.MustCompile(`(?i)^(?:aula|sala|laboratorio|lab|auditorio|piso|nivel|bloque|edificio|torre)$`),
}

// Keyword-prefixed room lines ("Aula 12", "Lab-2", "A-201") are never
// section-code anchors in free text.
var roomKeywordLine = regexp.MustCompile(`^(?:(?i:aula|lab|sala|auditorio|piso|nivel|bloque|edificio|torre)\b|[A-Z]-\d{2,3}$)`)

var schedulePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Lun|Mar|Mié|Jue|Vie|Sáb|Dom)\s+\d{1,2}:\d{2}`),
	regexp.MustCompile(`\d{1,2}:\d{2}\s+a\s+\d{1,2}:\d{2}`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	// Bare weekday tokens; letters on either side (MARTA, Domínguez) do not count.
	regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:lun(?:es)?|mar(?:tes)?|mi[eé](?:rcoles)?|jue(?:ves)?|vie(?:rnes)?|s[aá]b(?:ado)?|dom(?:ingo)?)(?:[^\p{L}]|$)`),
}

var instructorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+`), // Nombre Apellido
	regexp.MustCompile(`^[A-Z][A-Z]+\s+[A-Z][A-Z]+`), // NOMBRE APELLIDO
	regexp.MustCompile(`^[A-Z][a-z]+-[A-Z][a-z]+`),   // Nombre-Apellido
	regexp.MustCompile(`^[A-Z][A-Z]+-[A-Z][A-Z]+`),   // NOMBRE-APELLIDO
}

var periodKeywords = []string{"cuatrimestre", "bimestre", "2025", "2024"}

var modalityKeywords = []string{"presencial", "virtual", "remota", "hibrida", "online"}

// Accent-folded subject keywords.
var activityKeywords = []string{
	"derecho", "teoria", "filosofia", "notarial", "tributario", "procesal",
	"civil", "penal", "constitucional", "administrativo", "laboral", "comercial",
	"internacional", "publico", "privado", "materia", "asignatura", "curso",
	"seminario", "taller", "practica", "clinica", "interpretacion", "afro",
	"comunidades", "negras", "argentina", "perspectiva",
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
