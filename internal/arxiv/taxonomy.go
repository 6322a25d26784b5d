// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package arxiv

import (
	"fmt"
	"strings"
)

// knownArchives lists the top-level arXiv archives accepted in --category
// values. Subject classes inside an archive are not enumerated exhaustively;
// categoryNames covers the common ones for display.
var knownArchives = map[string]bool{
	"astro-ph": true,
	"cond-mat": true,
	"cs":       true,
	"econ":     true,
	"eess":     true,
	"gr-qc":    true,
	"hep-ex":   true,
	"hep-lat":  true,
	"hep-ph":   true,
	"hep-th":   true,
	"math":     true,
	"math-ph":  true,
	"nlin":     true,
	"nucl-ex":  true,
	"nucl-th":  true,
	"physics":  true,
	"q-bio":    true,
	"q-fin":    true,
	"quant-ph": true,
	"stat":     true,
}

// ValidateCategory checks that code has the shape of an arXiv taxonomy code
// (archive or archive.Subject with a known archive). It runs before any
// network call so typos fail fast.
func ValidateCategory(code string) error {
	if code == "" {
		return nil
	}
	archive := code
	if idx := strings.Index(code, "."); idx >= 0 {
		archive = code[:idx]
		subject := code[idx+1:]
		if subject == "" || strings.Contains(subject, ".") {
			return fmt.Errorf("invalid arXiv category %q (expected archive.Subject, e.g. cs.LG)", code)
		}
	}
	if !knownArchives[archive] {
		return fmt.Errorf("unknown arXiv archive %q in category %q (e.g. cs.LG, math.CO, quant-ph)", archive, code)
	}
	return nil
}

// CategoryName converts an arXiv category code to a human-readable name.
// Unknown codes are returned unchanged.
func CategoryName(code string) string {
	if name, ok := categoryNames[code]; ok {
		return name
	}
	return code
}

var categoryNames = map[string]string{
	// Computer Science
	"cs.AI": "Artificial Intelligence",
	"cs.AR": "Hardware Architecture",
	"cs.CC": "Computational Complexity",
	"cs.CE": "Computational Engineering",
	"cs.CG": "Computational Geometry",
	"cs.CL": "Computation and Language",
	"cs.CR": "Cryptography and Security",
	"cs.CV": "Computer Vision",
	"cs.CY": "Computers and Society",
	"cs.DB": "Databases",
	"cs.DC": "Distributed Computing",
	"cs.DL": "Digital Libraries",
	"cs.DM": "Discrete Mathematics",
	"cs.DS": "Data Structures and Algorithms",
	"cs.ET": "Emerging Technologies",
	"cs.FL": "Formal Languages",
	"cs.GL": "General Literature",
	"cs.GR": "Graphics",
	"cs.GT": "Computer Science and Game Theory",
	"cs.HC": "Human-Computer Interaction",
	"cs.IR": "Information Retrieval",
	"cs.IT": "Information Theory",
	"cs.LG": "Machine Learning",
	"cs.LO": "Logic in Computer Science",
	"cs.MA": "Multiagent Systems",
	"cs.MM": "Multimedia",
	"cs.MS": "Mathematical Software",
	"cs.NA": "Numerical Analysis",
	"cs.NE": "Neural and Evolutionary Computing",
	"cs.NI": "Networking and Internet Architecture",
	"cs.OH": "Other Computer Science",
	"cs.OS": "Operating Systems",
	"cs.PF": "Performance",
	"cs.PL": "Programming Languages",
	"cs.RO": "Robotics",
	"cs.SC": "Symbolic Computation",
	"cs.SD": "Sound",
	"cs.SE": "Software Engineering",
	"cs.SI": "Social and Information Networks",
	"cs.SY": "Systems and Control",
	// Mathematics
	"math.AC": "Commutative Algebra",
	"math.AG": "Algebraic Geometry",
	"math.AP": "Analysis of PDEs",
	"math.AT": "Algebraic Topology",
	"math.CA": "Classical Analysis and ODEs",
	"math.CO": "Combinatorics",
	"math.CT": "Category Theory",
	"math.CV": "Complex Variables",
	"math.DG": "Differential Geometry",
	"math.DS": "Dynamical Systems",
	"math.FA": "Functional Analysis",
	"math.GM": "General Mathematics",
	"math.GN": "General Topology",
	"math.GR": "Group Theory",
	"math.GT": "Geometric Topology",
	"math.HO": "History and Overview",
	"math.IT": "Information Theory",
	"math.KT": "K-Theory and Homology",
	"math.LO": "Logic",
	"math.MG": "Metric Geometry",
	"math.MP": "Mathematical Physics",
	"math.NA": "Numerical Analysis",
	"math.NT": "Number Theory",
	"math.OA": "Operator Algebras",
	"math.OC": "Optimization and Control",
	"math.PR": "Probability",
	"math.QA": "Quantum Algebra",
	"math.RA": "Rings and Algebras",
	"math.RT": "Representation Theory",
	"math.SG": "Symplectic Geometry",
	"math.SP": "Spectral Theory",
	"math.ST": "Statistics Theory",
	// Physics
	"physics.acc-ph":   "Accelerator Physics",
	"physics.ao-ph":    "Atmospheric and Oceanic Physics",
	"physics.app-ph":   "Applied Physics",
	"physics.atm-clus": "Atomic and Molecular Clusters",
	"physics.atom-ph":  "Atomic Physics",
	"physics.bio-ph":   "Biological Physics",
	"physics.chem-ph":  "Chemical Physics",
	"physics.class-ph": "Classical Physics",
	"physics.comp-ph":  "Computational Physics",
	"physics.data-an":  "Data Analysis",
	"physics.ed-ph":    "Physics Education",
	"physics.flu-dyn":  "Fluid Dynamics",
	"physics.gen-ph":   "General Physics",
	"physics.geo-ph":   "Geophysics",
	"physics.hist-ph":  "History and Philosophy of Physics",
	"physics.ins-det":  "Instrumentation and Detectors",
	"physics.med-ph":   "Medical Physics",
	"physics.optics":   "Optics",
	"physics.plasm-ph": "Plasma Physics",
	"physics.pop-ph":   "Popular Physics",
	"physics.soc-ph":   "Physics and Society",
	"physics.space-ph": "Space Physics",
	"quant-ph":         "Quantum Physics",
	// Statistics
	"stat.AP": "Applications",
	"stat.CO": "Computation",
	"stat.ME": "Methodology",
	"stat.ML": "Machine Learning",
	"stat.OT": "Other Statistics",
	"stat.TH": "Statistics Theory",
	// Electrical Engineering and Systems Science
	"eess.AS": "Audio and Speech Processing",
	"eess.IV": "Image and Video Processing",
	"eess.SP": "Signal Processing",
	"eess.SY": "Systems and Control",
	// Economics
	"econ.EM": "Econometrics",
	"econ.GN": "General Economics",
	"econ.TH": "Theoretical Economics",
}
