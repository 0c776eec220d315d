package ai

import "fmt"

// buildAnalysisPrompt assembles the Spanish consultant prompt for the
// tender analysis. The JSON contract mirrors models.ReportData; the formula
// section teaches the model to emit the canonical expression language the
// evaluator understands.
func buildAnalysisPrompt(pcapText, pptText string) string {
	return fmt.Sprintf(`Actúa como un experto consultor especializado en licitaciones públicas de electromedicina en España. Tu tarea es analizar el texto extraído de un Pliego de Cláusulas Administrativas Particulares (PCAP) y un Pliego de Prescripciones Técnicas (PPT).

Extrae únicamente la información verificable presente en los textos proporcionados para rellenar la estructura JSON solicitada. Responde SOLO con el objeto JSON, sin explicaciones, introducciones ni conclusiones.

**Análisis de Lotes:**
1. **Detecta si es por lotes:** Determina si la licitación está explícitamente dividida en lotes. Establece 'esPorLotes' en true si es así, false en caso contrario.
2. **Si es por lotes:** Rellena el array 'lotes'. Para cada lote: 'nombre', 'centroAsociado', 'descripcion', 'presupuesto' (string numérico sin IVA) y 'requisitosClave'.
3. **Si NO es por lotes:** El array 'lotes' debe quedar vacío ([]).

**Análisis de Criterios de Adjudicación y Fórmulas Económicas (CRÍTICO):**
Busca exhaustivamente en el PCAP la sección que define los criterios de adjudicación.
* 'puntuacionEconomica': el número MÁXIMO de puntos que se pueden obtener por el precio (número).
* 'formulaEconomica': ANÁLISIS EXHAUSTIVO DE FÓRMULAS MATEMÁTICAS.

  PASO 1 - BÚSQUEDA INTENSIVA. Busca en TODO el documento cualquier mención de:
  - "fórmula", "cálculo", "puntuación económica", "valoración económica", "criterio precio"
  - Expresiones con símbolos: +, -, *, /, ^, √, raíz, exponente, potencia
  - Variables como: P, A, B, C, X, Y, Z, Pi, Pe, Pm, Pmax, Pmin
  - Divisiones expresadas como "entre", "dividido", "cociente"
  - Raíces: "raíz", "√", "radical", "potencia de 1/n"
  - Exponentes: "elevado a", "^", "potencia"

  PASO 2 - IDENTIFICACIÓN DE VARIABLES según su contexto:
  - Precio de la oferta a evaluar: P, Pi, Pe, Precio_oferta, Oferta, O, B
  - Presupuesto de licitación: PBL, Presupuesto, A, Licitacion, L, VEC
  - Oferta más baja: Pmin, P_min, Oferta_baja, C, Min
  - Puntuación máxima: Pmax, P_max, Puntos_max, Maxima, U

  PASO 3 - CONVERSIÓN. Reescribe la fórmula con estas variables estándar:
  - 'price' = precio de la oferta a evaluar
  - 'tenderBudget' = presupuesto base de licitación
  - 'maxScore' = puntuación económica máxima
  - 'lowestPrice' = precio de la oferta más baja

  EJEMPLOS DE CONVERSIÓN:
  - "P_max * (P_min / P_i)" -> "maxScore * (lowestPrice / price)"
  - "U * raíz cuadrada de (A-B)/(A-C)" -> "maxScore * sqrt((tenderBudget - price) / (tenderBudget - lowestPrice))"
  - "Puntos_max * ((PBL-Oferta)/(PBL-Oferta_baja))^0.5" -> "maxScore * pow((tenderBudget - price) / (tenderBudget - lowestPrice), 0.5)"
  - "40 * raíz sexta de (A-B)/(A-C)" -> "maxScore * pow((tenderBudget - price) / (tenderBudget - lowestPrice), 1/6)"
  - "P_max * (1 - (P_i - P_min)/(PBL - P_min))" -> "maxScore * (1 - (price - lowestPrice) / (tenderBudget - lowestPrice))"

  REGLAS DE CONVERSIÓN:
  - "raíz cuadrada" o "√" -> sqrt(x)
  - "raíz cúbica" -> pow(x, 1/3)
  - "raíz n-ésima" o "raíz a la n" -> pow(x, 1/n)
  - "elevado a n" o "^n" -> pow(x, n)
  - "entre", "dividido por" -> /
  - "por", "multiplicado por" -> *
  - Los paréntesis se mantienen igual.

  VALIDACIÓN FINAL: la fórmula DEBE incluir 'maxScore' para escalar el resultado. Si no encuentras fórmula explícita, deja el campo vacío. Extrae la fórmula EXACTA del documento, no inventes ni simplifiques.

* 'umbralBajaTemeraria': condiciones para que una oferta sea considerada anormalmente baja o temeraria.
* 'criteriosAutomaticos': array de criterios evaluables por fórmula, cada uno con 'descripcion' y 'puntuacionMaxima' (número).
* 'criteriosSubjetivos': array de criterios de juicio de valor, con la misma estructura.

**Presupuesto GENERAL:** Busca el "Presupuesto Base de Licitación" (PBL) o "Valor Estimado del Contrato" (VEC) TOTAL. Extrae su valor numérico SIN IVA como string en 'analisisEconomico.presupuestoBaseLicitacion' (ej: "125000.50").

**Análisis Económico Detallado y Recomendación Estratégica de Costes (MUY IMPORTANTE):**
Actúa como estratega de licitaciones: no estimes los costes reales, **propón una oferta ganadora**.
1. Revisa la 'formulaEconomica' y el 'umbralBajaTemeraria' extraídos. Determina un precio de oferta total (base imponible) lo más bajo posible para maximizar la puntuación económica sin caer en baja temeraria.
2. Desglosa ese precio en 'analisisEconomico.costesDetalladosRecomendados' (todos los valores como strings numéricos): 'costePersonal', 'vacaciones', 'edesEquipoRespuestaRapida', 'materialIncluido', 'renovacionTecnologica', 'bolsaMateriales', 'dotacionTaller', 'equiposIT', 'equiposSustitucion', 'comprobadores', 'subcontratacion1', 'horasExtra', 'guardias', 'inventarioViajes', 'pisosSedes', 'vehiculos', 'combustibleAutopista', 'generalExpensesPercent' (ej: "13") e 'industrialProfitPercent' (razonable, entre "3" y "6").
3. La suma de los costes más los porcentajes de gastos generales y beneficio industrial debe igualar tu precio estratégico. Basa el desglose en los requisitos del PCAP y PPT. Omite los campos que no puedas estimar.

**ANÁLISIS DE COSTES SALARIALES ('analisisEconomico.personal'):**
1. Identifica el número exacto de trabajadores requeridos por puesto.
2. Calcula salarios anuales realistas por puesto: técnicos de electromedicina 25.000-35.000 EUR, ingenieros biomédicos 35.000-50.000, responsables/coordinadores 40.000-60.000, administrativos 20.000-30.000, técnicos especialistas 28.000-38.000, jefes de servicio 50.000-70.000.
3. Añade cargas sociales (aprox. 30%% sobre el salario bruto) y multiplica por el número de trabajadores.
4. 'costesEstimados' debe ser un string numérico (ej: "180000").
5. 'totalTrabajadores' es el total (ej: "5") y 'desglosePorPuesto' un desglose específico con número, puesto completo, especialidad y nivel de experiencia.

**Resto de secciones:** rellena 'objetoLicitacion' (descripcion, cpv, entidad), 'alcanceContrato' (geografico, serviciosProductos, requisitosTecnicos, exclusiones), 'marcoTemporal' (duracionBase, inicioPrevisto, finEstimado), 'regimenProrrogas' (numeroMaximo, duracion, condiciones, procedimiento), 'modificacionesContractuales' (supuestos, porcentajeMaximo, procedimiento, documentacion), 'cronogramaProceso' (limitePresentacion, aperturaSobres, plazoAdjudicacion, inicioEjecucion) y los apartados 'compras', 'subcontrataciones' y 'otrosGastos' de 'analisisEconomico'.

Regla general: si un dato no se encuentra, usa "No especificado en los documentos" para strings y arrays vacíos para listas.

--- TEXTO PCAP ---
%s
--- FIN TEXTO PCAP ---

--- TEXTO PPT ---
%s
--- FIN TEXTO PPT ---
`, pcapText, pptText)
}
