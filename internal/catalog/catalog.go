// Package catalog holds the static career reference data the chat pipeline
// grounds its suggestions on. The list is fixed at build time, rendered in
// full into every prompt and used as the validation set for suggestion names.
package catalog

// Career is one catalog entry. Name is the join key the model's output is
// matched against, so it must stay byte-identical to what the prompt shows.
type Career struct {
	Name        string
	Description string
}

var careers = []Career{
	{
		Name:        "Ingeniería en Sistemas Computacionales",
		Description: "Desarrollo de software, algoritmos, redes, seguridad informática. Materias: Programación Avanzada, Estructuras de Datos, Redes de Computadoras, Inteligencia Artificial.",
	},
	{
		Name:        "Diseño Gráfico Digital",
		Description: "Creación de contenido visual, diseño web, animación, branding. Materias: Teoría del Color, Tipografía, Diseño Web Responsive, Animación 2D/3D.",
	},
	{
		Name:        "Mecatrónica",
		Description: "Integración de mecánica, electrónica, informática y control. Diseño de robots, sistemas automatizados. Materias: Robótica, Control Automático, Electrónica Digital, Neumática e Hidráulica.",
	},
	{
		Name:        "Psicología",
		Description: "Estudio del comportamiento humano, procesos mentales, terapia, investigación social. Materias: Psicología Clínica, Psicología del Desarrollo, Neuropsicología, Estadística Aplicada a la Psicología.",
	},
	{
		Name:        "Contaduría Pública",
		Description: "Gestión financiera, auditoría, impuestos, costos. Materias: Contabilidad Financiera, Auditoría, Derecho Fiscal, Finanzas Corporativas.",
	},
	{
		Name:        "Ingeniería Civil",
		Description: "Diseño, construcción y mantenimiento de infraestructuras. Materias: Estructuras, Geotecnia, Hidráulica, Vías Terrestres, Construcción. Incluye temas de Mecánica de Fluidos para sistemas de agua.",
	},
	{
		Name:        "Ingeniería Mecánica",
		Description: "Diseño y análisis de máquinas, sistemas de energía, procesos de manufactura. Materias: Termodinámica, Mecánica de Materiales, Diseño Mecánico, Mecánica de Fluidos.",
	},
	{
		Name:        "Matemáticas Aplicadas",
		Description: "Modelado matemático de fenómenos, análisis de datos, optimización. Materias: Álgebra Lineal, Cálculo Avanzado, Ecuaciones Diferenciales, Optimización, Análisis Numérico.",
	},
	{
		Name:        "Literatura y Lingüística",
		Description: "Análisis de textos, estudio de idiomas, creación literaria, traducción. Materias: Historia de la Literatura, Teorías Lingüísticas, Retórica, Escritura Creativa.",
	},
}

// Careers returns the full catalog in stable order. Callers must not mutate
// the returned slice.
func Careers() []Career {
	return careers
}

// Contains reports whether name exactly matches a catalog entry.
func Contains(name string) bool {
	for _, c := range careers {
		if c.Name == name {
			return true
		}
	}
	return false
}
