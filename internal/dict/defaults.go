package dict

// 内置默认词表。全部为小写的字面量词条，匹配时按词边界精确查找。

var defaultSkills = []string{
	// 编程语言
	"python", "java", "javascript", "typescript", "c++", "c#", "c", "go", "rust",
	"ruby", "php", "swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css",
	"perl", "shell", "bash", "powershell",

	// 框架与库
	"react", "angular", "vue", "node.js", "django", "flask", "fastapi", "spring",
	"express", "laravel", "rails", "tensorflow", "pytorch", "keras", "scikit-learn",
	"pandas", "numpy", "matplotlib", "seaborn",

	// 数据库
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "oracle", "sqlite",
	"cassandra", "dynamodb", "neo4j",

	// 云与DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "ci/cd",
	"terraform", "ansible", "linux", "unix",

	// 工具与平台
	"github", "gitlab", "jira", "confluence", "slack", "tableau", "power bi",
	"excel", "sas", "spss", "splunk", "databricks", "snowflake",

	// 方法论
	"agile", "scrum", "kanban", "devops", "mlops", "microservices", "rest api",
	"graphql", "api development",

	// 数据科学与机器学习
	"machine learning", "deep learning", "neural networks", "nlp", "computer vision",
	"data analysis", "data visualization", "statistics", "a/b testing",

	// 其他
	"project management", "leadership", "communication", "problem solving",
}

// 工具词表：在技能之外额外检索的办公与协作类工具
var defaultTools = []string{
	"jira", "confluence", "slack", "teams", "zoom", "tableau", "power bi",
	"excel", "word", "powerpoint", "outlook", "salesforce", "hubspot",
}

var defaultEducation = []string{
	"bachelor", "master", "phd", "doctorate", "degree", "diploma", "certification",
	"bs", "ba", "ms", "ma", "mba", "ph.d", "bsc", "msc", "mtech", "btech",
}

var defaultExperience = []string{
	"years", "experience", "worked", "developed", "implemented", "managed",
	"led", "created", "designed", "built", "maintained", "optimized",
	"engineered", "architected", "deployed", "delivered",
}

// 学习路径的前置依赖表，键按子串匹配
var defaultPrerequisites = map[string][]string{
	"machine learning": {"python", "statistics", "data analysis"},
	"deep learning":    {"machine learning", "python", "neural networks"},
	"react":            {"javascript", "html", "css"},
	"kubernetes":       {"docker", "linux", "devops"},
	"aws":              {"linux", "networking", "cloud computing"},
}
